package utils

import (
	"net"
	"strings"
)

// LocalIPs returns the non-loopback IPv4 addresses of this station.
// Link-local (169.254.x.x) addresses are only kept when nothing better exists.
func LocalIPs() []string {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return nil
	}
	var ips []string
	for _, addr := range addrs {
		if ipnet, ok := addr.(*net.IPNet); ok && !ipnet.IP.IsLoopback() && ipnet.IP.To4() != nil {
			ips = append(ips, ipnet.IP.String())
		}
	}
	return preferRoutable(ips)
}

func preferRoutable(ips []string) []string {
	routable := false
	for _, ip := range ips {
		if !strings.HasPrefix(ip, "169.254") {
			routable = true
			break
		}
	}
	if !routable {
		return ips
	}
	var out []string
	for _, ip := range ips {
		if !strings.HasPrefix(ip, "169.254") {
			out = append(out, ip)
		}
	}
	return out
}

// StationURLs lists the addresses tablets can use to reach the API on port
func StationURLs(port string) []string {
	var urls []string
	for _, ip := range LocalIPs() {
		urls = append(urls, "http://"+net.JoinHostPort(ip, port))
	}
	return urls
}
