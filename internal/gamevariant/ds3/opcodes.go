package ds3

// Opcode values match DS3_Frpg2ReliableUdpMessageType in the original
// client/server (Source/Server.DarkSouls3/.../DS3_BootManager.cpp,
// DS3_SignManager.cpp, DS3_RankingManager.cpp): each manager's
// OnMessageRecieved switches on one of these.
const (
	opRequestWaitForUserLogin       uint32 = 0x00000C91
	opRequestGetAnnounceMessageList uint32 = 0x00000C92
	opPlayerInfoUploadConfigPush    uint32 = 0x00000C9A
	opRequestUpdatePlayerStatus     uint32 = 0x00000CA1
	opRequestUpdatePlayerCharacter  uint32 = 0x00000CA2

	opRequestGetSignList        uint32 = 0x00000D10
	opRequestCreateSign         uint32 = 0x00000D11
	opRequestRemoveSign         uint32 = 0x00000D12
	opRequestUpdateSign         uint32 = 0x00000D13
	opRequestSummonSign         uint32 = 0x00000D14
	opRequestRejectSign         uint32 = 0x00000D15
	opPushRequestSummonSign     uint32 = 0x00000D16
	opPushRequestRemoveSign     uint32 = 0x00000D17
	opRequestGetRightMatchingArea uint32 = 0x00000D18
	opPushRequestRejectSign     uint32 = 0x00000D19

	opRequestCreateBloodMessage       uint32 = 0x00000D30
	opRequestGetBloodMessageList      uint32 = 0x00000D31
	opRequestReentryBloodMessage      uint32 = 0x00000D32
	opRequestReCreateBloodMessageList uint32 = 0x00000D33
	opRequestGetBloodMessageEvaluation uint32 = 0x00000D34
	opRequestEvaluateBloodMessage     uint32 = 0x00000D35
	opPushRequestEvaluateBloodMessage uint32 = 0x00000D36
	opRequestRemoveBloodMessage       uint32 = 0x00000D37

	opRequestCreateBloodstain   uint32 = 0x00000D40
	opRequestGetBloodstainList  uint32 = 0x00000D41
	opRequestGetDeadingGhost    uint32 = 0x00000D42

	opRequestCreateGhostData   uint32 = 0x00000D50
	opRequestGetGhostDataList  uint32 = 0x00000D51

	opRequestGetBreakInTargetList   uint32 = 0x00000D60
	opRequestBreakInTarget          uint32 = 0x00000D61
	opRequestRejectBreakInTarget    uint32 = 0x00000D62
	opPushRequestBreakInTarget      uint32 = 0x00000D63
	opPushRequestRejectBreakInTarget uint32 = 0x00000D64

	opRequestGetVisitorList   uint32 = 0x00000D70
	opRequestVisit            uint32 = 0x00000D71
	opRequestRejectVisit      uint32 = 0x00000D72
	opPushRequestVisit        uint32 = 0x00000D73
	opPushRequestRejectVisit  uint32 = 0x00000D74
	opPushRequestRemoveVisitor uint32 = 0x00000D75

	opRequestRegisterQuickMatch   uint32 = 0x00000D80
	opRequestUpdateQuickMatch     uint32 = 0x00000D81
	opRequestUnregisterQuickMatch uint32 = 0x00000D82
	opRequestSearchQuickMatch     uint32 = 0x00000D83
	opRequestJoinQuickMatch       uint32 = 0x00000D84
	opPushRequestJoinQuickMatch   uint32 = 0x00000D85
	opPushRequestRejectQuickMatch uint32 = 0x00000D86
	opRequestAcceptQuickMatch     uint32 = 0x00000D87
	opRequestRejectQuickMatch     uint32 = 0x00000D88
	opRequestSendQuickMatchStart  uint32 = 0x00000D89
	opRequestSendQuickMatchResult uint32 = 0x00000D8A

	opRequestRegisterRankingData    uint32 = 0x00000E20
	opRequestGetRankingData         uint32 = 0x00000E21
	opRequestGetCharacterRankingData uint32 = 0x00000E22
	opRequestCountRankingData       uint32 = 0x00000E23

	opRequestNotifyRingBell       uint32 = 0x00000E30
	opPushRequestNotifyRingBell   uint32 = 0x00000E31
	opRequestSendMessageToPlayers uint32 = 0x00000E32
	opPushRequestSendMessageToPlayers uint32 = 0x00000E33

	opRequestLogMessage uint32 = 0x00000E40
)
