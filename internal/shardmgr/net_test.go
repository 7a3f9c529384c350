package shardmgr

import (
	"net"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddrToAddrPortRoundTrips(t *testing.T) {
	udpAddr := &net.UDPAddr{IP: net.ParseIP("127.0.0.1"), Port: 50100}

	ap, err := addrToAddrPort(udpAddr)
	require.NoError(t, err)
	require.Equal(t, uint16(50100), ap.Port())
	require.True(t, ap.Addr().Is4())

	back := netAddrFor(ap)
	require.Equal(t, udpAddr.String(), back.String())
}

func TestAddrToAddrPortRejectsNonUDP(t *testing.T) {
	_, err := addrToAddrPort(&net.TCPAddr{IP: net.ParseIP("127.0.0.1"), Port: 1})
	require.Error(t, err)
}

func TestAddrToAddrPortIPv6(t *testing.T) {
	udpAddr := &net.UDPAddr{IP: net.ParseIP("::1"), Port: 443}
	ap, err := addrToAddrPort(udpAddr)
	require.NoError(t, err)
	require.Equal(t, netip.MustParseAddr("::1"), ap.Addr())
}
