// Package constants holds the fixed timing and size limits the shard core
// is built against. They are plain top-level constants, not configuration:
// a private server operator can tune pool sizes and matching tables, but
// the wire-protocol limits below are dictated by the client and never vary
// per deployment.
package constants

import "time"

const (
	// MaxDatagramSize is the largest UDP datagram the packet codec will
	// emit or accept (spec.md §4.1).
	MaxDatagramSize = 2048

	// MaxFragmentMessageLength is the largest payload (header + compressed
	// body) carried by a single DAT packet before the reliable stream
	// fragments it into DAT-FRAG packets (spec.md §4.2).
	MaxFragmentMessageLength = 1024

	// MaxSendQueueSize is the total unacknowledged payload bytes a
	// reliable stream will buffer before aborting the connection
	// (spec.md §4.2).
	MaxSendQueueSize = 256 * 1024

	// MaxRetransmits is the number of unacknowledged retransmit attempts
	// before a reliable stream transitions to Closing (spec.md §4.2).
	MaxRetransmits = 8

	// ReceiveWindowSize bounds how many out-of-order packets the receiver
	// buffers while waiting for a sequence gap to fill (spec.md §4.2).
	ReceiveWindowSize = 64

	// ClientTimeout is the inactivity period after which a reliable
	// stream is forced into Closing (spec.md §4.2, §4.4).
	ClientTimeout = 60 * time.Second

	// SessionIdleTimeout is the inactivity period after which a
	// ClientSession is torn down (spec.md §3 ClientSession invariants).
	SessionIdleTimeout = 60 * time.Second

	// AuthTicketTTL is how long an unconsumed AuthTicket stays valid
	// (spec.md §3 AuthTicket, §4.4).
	AuthTicketTTL = 30 * time.Second

	// TickInterval is the shard's cooperative event-loop period
	// (spec.md §4.4 "Per-tick work").
	TickInterval = 50 * time.Millisecond

	// AntiCheatScanInterval is how often the anti-cheat scanner evaluates
	// a session's triggers (spec.md §4.7).
	AntiCheatScanInterval = 5 * time.Second

	// AntiCheatWarnCooldown bounds how often a warning management message
	// is re-sent to the same player (spec.md §4.7).
	AntiCheatWarnCooldown = 60 * time.Second

	// BanAnnounceDisconnectDelay is the grace period between sending a
	// ban announcement and actually dropping the connection
	// (spec.md §4.5 boot handler, §7 BannedAtLogin).
	BanAnnounceDisconnectDelay = 2 * time.Second

	// MaxSendMessageToPlayersRecipients bounds RequestSendMessageToPlayers
	// fan-out (spec.md §4.5 misc handler, §8 scenario 6).
	MaxSendMessageToPlayersRecipients = 6

	// QuickMatchStaleTimeout is how long a registered undead-match host can
	// go without a RegisterQuickMatch/UpdateQuickMatch keepalive before its
	// entry is expired from the registry (spec.md §4.4 per-tick work item 4
	// "undead-match expiry").
	QuickMatchStaleTimeout = 60 * time.Second

	// EvictionSweepInterval is how often the shard manager checks dynamic
	// shards' `.keepalive` files for idle eviction (spec.md §4.8).
	EvictionSweepInterval = 30 * time.Second

	// WebhookCooldown is the minimum spacing between two outbound
	// notifications about the same origin (spec.md §4.9 "coalesce
	// per-origin with a >=10s cooldown").
	WebhookCooldown = 10 * time.Second

	// NRSSRSignature is the 4-byte magic a validated blob entry's payload
	// must begin with to be treated as an NRSSR record (spec.md §4.10).
	NRSSRSignature = 0x5652584E

	// NRSSRVersion is the version field that must follow the NRSSR
	// signature (spec.md §4.10).
	NRSSRVersion = 0x8405

	// NRSSRMaxPropertyStringLen bounds a typed NRSSR property string
	// (spec.md §4.10).
	NRSSRMaxPropertyStringLen = 1024

	// NRSSRMaxHostNameLen bounds the NRSSR host-name field
	// (spec.md §4.10).
	NRSSRMaxHostNameLen = 256

	// NRSSRSessionSize is the fixed, required value of the NRSSR
	// session-size field (spec.md §4.10).
	NRSSRSessionSize = 8
)
