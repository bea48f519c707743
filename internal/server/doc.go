// Package server exposes the remote over a WebSocket control endpoint.
//
// Clients connect to /ws and exchange small JSON messages:
//
//	{"action":"send","power":true,"mode":"cool","temp":24,"fan":"auto"}
//	{"action":"deflector"}
//	{"action":"status"}
//
// Every request gets one reply:
//
//	{"ok":true,"busy":true,"command":"on mode=cool temp=24C fan=auto"}
//	{"ok":false,"error":"transmission already in progress"}
//
// A send while a transmission is in flight is rejected, mirroring the
// single-transmission contract of the player. While running, the server
// advertises itself over mDNS as a _mideair._tcp service so panels on the
// local network can find it.
package server
