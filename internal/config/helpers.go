package config

import (
	"net"
	"net/url"
	"strconv"
)

// ServiceName identifies this service in logs and APM dashboards.
const ServiceName = "gs-backend"

func urlQueryEscape(s string) string {
	return url.QueryEscape(s)
}

// joinHostPort handles IPv6 hosts by adding brackets when needed.
func joinHostPort(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}
