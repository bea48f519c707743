package server

import (
	"go.uber.org/zap"

	"github.com/pali/mideair/internal/logging"
	"github.com/pali/mideair/internal/protocol"
)

// request is one JSON control message from a client.
type request struct {
	Action string `json:"action"`          // "send", "deflector" or "status"
	Power  *bool  `json:"power,omitempty"` // nil leaves the current value
	Mode   string `json:"mode,omitempty"`
	Temp   *int   `json:"temp,omitempty"`
	Fan    string `json:"fan,omitempty"`
}

// response is the reply to one request.
type response struct {
	OK      bool   `json:"ok"`
	Error   string `json:"error,omitempty"`
	Busy    bool   `json:"busy"`
	Command string `json:"command,omitempty"`
}

// dispatch applies one control message under the server's command lock.
func (s *Server) dispatch(remoteAddr string, req request) response {
	s.mu.Lock()
	defer s.mu.Unlock()

	logging.Debug("Control request",
		zap.String("remote_addr", remoteAddr),
		zap.String("action", req.Action),
	)

	switch req.Action {
	case "send":
		if err := s.applyFields(req); err != nil {
			return s.fail(err)
		}
		if err := s.remote.Send(); err != nil {
			return s.fail(err)
		}
		return s.ok()

	case "deflector":
		if err := s.remote.MoveDeflector(); err != nil {
			return s.fail(err)
		}
		return s.ok()

	case "status":
		return s.ok()

	default:
		return response{
			Error: "unknown action: " + req.Action,
			Busy:  s.remote.Busy(),
		}
	}
}

// applyFields updates the shared command model from the optional request
// fields.
func (s *Server) applyFields(req request) error {
	if req.Power != nil {
		s.remote.SetEnabled(*req.Power)
	}
	if req.Mode != "" {
		mode, err := protocol.ParseMode(req.Mode)
		if err != nil {
			return err
		}
		s.remote.SetMode(mode)
	}
	if req.Temp != nil {
		s.remote.SetTemperature(*req.Temp)
	}
	if req.Fan != "" {
		fan, err := protocol.ParseFanLevel(req.Fan)
		if err != nil {
			return err
		}
		s.remote.SetFanLevel(fan)
	}
	return nil
}

func (s *Server) ok() response {
	return response{
		OK:      true,
		Busy:    s.remote.Busy(),
		Command: s.remote.Command().String(),
	}
}

func (s *Server) fail(err error) response {
	return response{
		Error:   err.Error(),
		Busy:    s.remote.Busy(),
		Command: s.remote.Command().String(),
	}
}
