package shardmgr

import (
	"fmt"
	"net"
	"net/netip"
)

// addrToAddrPort converts a net.PacketConn peer address into the
// netip.AddrPort session.Table keys on.
func addrToAddrPort(addr net.Addr) (netip.AddrPort, error) {
	udpAddr, ok := addr.(*net.UDPAddr)
	if !ok {
		return netip.AddrPort{}, fmt.Errorf("shardmgr: unexpected remote address type %T", addr)
	}
	return udpAddr.AddrPort(), nil
}

// netAddrFor converts a session's stored netip.AddrPort back into the
// net.Addr net.PacketConn.WriteTo expects.
func netAddrFor(ap netip.AddrPort) net.Addr {
	return net.UDPAddrFromAddrPort(ap)
}
