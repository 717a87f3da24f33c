package infra

import (
	"fmt"
	"os"

	"github.com/grandcat/zeroconf"
	"github.com/rs/zerolog/log"
)

const MDNSService = "_salonpos._tcp"

// AnnounceLAN registers the API on the local network over mDNS so tablets in
// the salon can find it without a fixed IP. Call Shutdown on the returned
// server when stopping.
func AnnounceLAN(port int, publicURL string) (*zeroconf.Server, error) {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "salonpos"
	}
	instance := fmt.Sprintf("SalonPOS %s", host)
	txt := []string{"path=/v1", "url=" + publicURL}

	srv, err := zeroconf.Register(instance, MDNSService, "local.", port, txt, nil)
	if err != nil {
		return nil, fmt.Errorf("mdns: register: %w", err)
	}
	log.Info().Str("instance", instance).Int("port", port).Msg("mdns: servicio anunciado en la red local")
	return srv, nil
}
