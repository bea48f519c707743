package server

import (
	"fmt"
	"os"

	"github.com/grandcat/zeroconf"
	"go.uber.org/zap"

	"github.com/pali/mideair/internal/logging"
	"github.com/pali/mideair/internal/version"
)

const (
	// ServiceType is the mDNS service type advertised while the control
	// server runs.
	ServiceType = "_mideair._tcp"

	// ServiceDomain is the mDNS domain (typically "local.").
	ServiceDomain = "local."
)

// advertiser wraps the zeroconf registration so Run can shut it down.
type advertiser struct {
	srv *zeroconf.Server
}

// advertise registers the control service on the local network.
func advertise(port int) (*advertiser, error) {
	instance, err := os.Hostname()
	if err != nil || instance == "" {
		instance = "mideair"
	}

	txt := []string{"version=" + version.Version}

	srv, err := zeroconf.Register(instance, ServiceType, ServiceDomain, port, txt, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to register mDNS service: %w", err)
	}

	logging.Info("mDNS service registered",
		zap.String("instance", instance),
		zap.String("type", ServiceType),
		zap.Int("port", port),
	)

	return &advertiser{srv: srv}, nil
}

func (a *advertiser) shutdown() {
	a.srv.Shutdown()
	logging.Info("mDNS service unregistered")
}
