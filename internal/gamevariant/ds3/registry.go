package ds3

import "github.com/TLeonardUK/ds3os-sub000/internal/netcode/message"

// registry builds this variant's declarative opcode table
// (spec.md §4.3), one Entry per request/response/push pair the original
// DS3_*Manager.cpp files handle.
func registry() *message.Registry {
	return message.NewRegistry(
		message.Entry{
			Opcode:          opRequestWaitForUserLogin,
			Request:         &RequestWaitForUserLogin{},
			RequestCtor:     func() message.Body { return &RequestWaitForUserLogin{} },
			Response:        &RequestWaitForUserLoginResponse{},
			ResponseCtor:    func() message.Body { return &RequestWaitForUserLoginResponse{} },
			ExpectsResponse: true,
		},
		message.Entry{
			Opcode:          opRequestGetAnnounceMessageList,
			Request:         &RequestGetAnnounceMessageList{},
			RequestCtor:     func() message.Body { return &RequestGetAnnounceMessageList{} },
			Response:        &AnnounceMessageListResponse{},
			ResponseCtor:    func() message.Body { return &AnnounceMessageListResponse{} },
			ExpectsResponse: true,
		},
		message.Entry{
			Opcode:      opPlayerInfoUploadConfigPush,
			Request:     &PlayerInfoUploadConfigPush{},
			RequestCtor: func() message.Body { return &PlayerInfoUploadConfigPush{} },
		},
		message.Entry{
			Opcode:          opRequestUpdatePlayerStatus,
			Request:         &RequestUpdatePlayerStatus{},
			RequestCtor:     func() message.Body { return &RequestUpdatePlayerStatus{} },
			Response:        &RequestUpdatePlayerStatusResponse{},
			ResponseCtor:    func() message.Body { return &RequestUpdatePlayerStatusResponse{} },
			ExpectsResponse: true,
		},
		message.Entry{
			Opcode:          opRequestGetSignList,
			Request:         &RequestGetSignList{},
			RequestCtor:     func() message.Body { return &RequestGetSignList{} },
			Response:        &SignListResponse{},
			ResponseCtor:    func() message.Body { return &SignListResponse{} },
			ExpectsResponse: true,
		},
		message.Entry{
			Opcode:          opRequestCreateSign,
			Request:         &RequestCreateSign{},
			RequestCtor:     func() message.Body { return &RequestCreateSign{} },
			Response:        &CreateSignResponse{},
			ResponseCtor:    func() message.Body { return &CreateSignResponse{} },
			ExpectsResponse: true,
		},
		message.Entry{
			Opcode:          opRequestRemoveSign,
			Request:         &RequestRemoveSign{},
			RequestCtor:     func() message.Body { return &RequestRemoveSign{} },
			Response:        &RequestRemoveSignResponse{},
			ResponseCtor:    func() message.Body { return &RequestRemoveSignResponse{} },
			ExpectsResponse: true,
		},
		message.Entry{
			Opcode:          opRequestUpdateSign,
			Request:         &RequestUpdateSign{},
			RequestCtor:     func() message.Body { return &RequestUpdateSign{} },
			Response:        &RequestUpdateSignResponse{},
			ResponseCtor:    func() message.Body { return &RequestUpdateSignResponse{} },
			ExpectsResponse: true,
		},
		message.Entry{
			Opcode:          opRequestSummonSign,
			Request:         &RequestSummonSign{},
			RequestCtor:     func() message.Body { return &RequestSummonSign{} },
			Response:        &RequestSummonSignResponse{},
			ResponseCtor:    func() message.Body { return &RequestSummonSignResponse{} },
			ExpectsResponse: true,
		},
		message.Entry{
			Opcode:          opRequestRejectSign,
			Request:         &RequestRejectSign{},
			RequestCtor:     func() message.Body { return &RequestRejectSign{} },
			Response:        &RequestRejectSignResponse{},
			ResponseCtor:    func() message.Body { return &RequestRejectSignResponse{} },
			ExpectsResponse: true,
		},
		message.Entry{
			Opcode:      opPushRequestSummonSign,
			Request:     &PushRequestSummonSign{},
			RequestCtor: func() message.Body { return &PushRequestSummonSign{} },
		},
		message.Entry{
			Opcode:      opPushRequestRemoveSign,
			Request:     &PushRequestRemoveSign{},
			RequestCtor: func() message.Body { return &PushRequestRemoveSign{} },
		},
		message.Entry{
			Opcode:      opPushRequestRejectSign,
			Request:     &PushRequestRejectSign{},
			RequestCtor: func() message.Body { return &PushRequestRejectSign{} },
		},
		message.Entry{
			Opcode:          opRequestRegisterRankingData,
			Request:         &RequestRegisterRankingData{},
			RequestCtor:     func() message.Body { return &RequestRegisterRankingData{} },
			Response:        &RegisterRankingDataResponse{},
			ResponseCtor:    func() message.Body { return &RegisterRankingDataResponse{} },
			ExpectsResponse: true,
		},
		message.Entry{
			Opcode:          opRequestGetRankingData,
			Request:         &RequestGetRankingData{},
			RequestCtor:     func() message.Body { return &RequestGetRankingData{} },
			Response:        &GetRankingDataResponse{},
			ResponseCtor:    func() message.Body { return &GetRankingDataResponse{} },
			ExpectsResponse: true,
		},
		message.Entry{
			Opcode:          opRequestGetCharacterRankingData,
			Request:         &RequestGetCharacterRankingData{},
			RequestCtor:     func() message.Body { return &RequestGetCharacterRankingData{} },
			Response:        &GetCharacterRankingDataResponse{},
			ResponseCtor:    func() message.Body { return &GetCharacterRankingDataResponse{} },
			ExpectsResponse: true,
		},
		message.Entry{
			Opcode:          opRequestCountRankingData,
			Request:         &RequestCountRankingData{},
			RequestCtor:     func() message.Body { return &RequestCountRankingData{} },
			Response:        &CountRankingDataResponse{},
			ResponseCtor:    func() message.Body { return &CountRankingDataResponse{} },
			ExpectsResponse: true,
		},
		message.Entry{
			Opcode:          opRequestUpdatePlayerCharacter,
			Request:         &RequestUpdatePlayerCharacter{},
			RequestCtor:     func() message.Body { return &RequestUpdatePlayerCharacter{} },
			Response:        &RequestUpdatePlayerCharacterResponse{},
			ResponseCtor:    func() message.Body { return &RequestUpdatePlayerCharacterResponse{} },
			ExpectsResponse: true,
		},
		message.Entry{
			Opcode:          opRequestGetRightMatchingArea,
			Request:         &RequestGetRightMatchingArea{},
			RequestCtor:     func() message.Body { return &RequestGetRightMatchingArea{} },
			Response:        &GetRightMatchingAreaResponse{},
			ResponseCtor:    func() message.Body { return &GetRightMatchingAreaResponse{} },
			ExpectsResponse: true,
		},

		// blood messages
		message.Entry{
			Opcode:          opRequestCreateBloodMessage,
			Request:         &RequestCreateBloodMessage{},
			RequestCtor:     func() message.Body { return &RequestCreateBloodMessage{} },
			Response:        &CreateBloodMessageResponse{},
			ResponseCtor:    func() message.Body { return &CreateBloodMessageResponse{} },
			ExpectsResponse: true,
		},
		message.Entry{
			Opcode:          opRequestGetBloodMessageList,
			Request:         &RequestGetBloodMessageList{},
			RequestCtor:     func() message.Body { return &RequestGetBloodMessageList{} },
			Response:        &GetBloodMessageListResponse{},
			ResponseCtor:    func() message.Body { return &GetBloodMessageListResponse{} },
			ExpectsResponse: true,
		},
		message.Entry{
			Opcode:          opRequestReentryBloodMessage,
			Request:         &RequestReentryBloodMessage{},
			RequestCtor:     func() message.Body { return &RequestReentryBloodMessage{} },
			Response:        &ReentryBloodMessageResponse{},
			ResponseCtor:    func() message.Body { return &ReentryBloodMessageResponse{} },
			ExpectsResponse: true,
		},
		message.Entry{
			Opcode:          opRequestReCreateBloodMessageList,
			Request:         &RequestReCreateBloodMessageList{},
			RequestCtor:     func() message.Body { return &RequestReCreateBloodMessageList{} },
			Response:        &ReCreateBloodMessageListResponse{},
			ResponseCtor:    func() message.Body { return &ReCreateBloodMessageListResponse{} },
			ExpectsResponse: true,
		},
		message.Entry{
			Opcode:          opRequestGetBloodMessageEvaluation,
			Request:         &RequestGetBloodMessageEvaluation{},
			RequestCtor:     func() message.Body { return &RequestGetBloodMessageEvaluation{} },
			Response:        &GetBloodMessageEvaluationResponse{},
			ResponseCtor:    func() message.Body { return &GetBloodMessageEvaluationResponse{} },
			ExpectsResponse: true,
		},
		message.Entry{
			Opcode:          opRequestEvaluateBloodMessage,
			Request:         &RequestEvaluateBloodMessage{},
			RequestCtor:     func() message.Body { return &RequestEvaluateBloodMessage{} },
			Response:        &RequestEvaluateBloodMessageResponse{},
			ResponseCtor:    func() message.Body { return &RequestEvaluateBloodMessageResponse{} },
			ExpectsResponse: true,
		},
		message.Entry{
			Opcode:      opPushRequestEvaluateBloodMessage,
			Request:     &PushRequestEvaluateBloodMessage{},
			RequestCtor: func() message.Body { return &PushRequestEvaluateBloodMessage{} },
		},
		message.Entry{
			Opcode:          opRequestRemoveBloodMessage,
			Request:         &RequestRemoveBloodMessage{},
			RequestCtor:     func() message.Body { return &RequestRemoveBloodMessage{} },
			Response:        &RequestRemoveBloodMessageResponse{},
			ResponseCtor:    func() message.Body { return &RequestRemoveBloodMessageResponse{} },
			ExpectsResponse: true,
		},

		// bloodstains
		message.Entry{
			Opcode:          opRequestCreateBloodstain,
			Request:         &RequestCreateBloodstain{},
			RequestCtor:     func() message.Body { return &RequestCreateBloodstain{} },
			Response:        &CreateBloodstainResponse{},
			ResponseCtor:    func() message.Body { return &CreateBloodstainResponse{} },
			ExpectsResponse: true,
		},
		message.Entry{
			Opcode:          opRequestGetBloodstainList,
			Request:         &RequestGetBloodstainList{},
			RequestCtor:     func() message.Body { return &RequestGetBloodstainList{} },
			Response:        &GetBloodstainListResponse{},
			ResponseCtor:    func() message.Body { return &GetBloodstainListResponse{} },
			ExpectsResponse: true,
		},
		message.Entry{
			Opcode:          opRequestGetDeadingGhost,
			Request:         &RequestGetDeadingGhost{},
			RequestCtor:     func() message.Body { return &RequestGetDeadingGhost{} },
			Response:        &GetDeadingGhostResponse{},
			ResponseCtor:    func() message.Body { return &GetDeadingGhostResponse{} },
			ExpectsResponse: true,
		},

		// ghosts
		message.Entry{
			Opcode:          opRequestCreateGhostData,
			Request:         &RequestCreateGhostData{},
			RequestCtor:     func() message.Body { return &RequestCreateGhostData{} },
			Response:        &CreateGhostDataResponse{},
			ResponseCtor:    func() message.Body { return &CreateGhostDataResponse{} },
			ExpectsResponse: true,
		},
		message.Entry{
			Opcode:          opRequestGetGhostDataList,
			Request:         &RequestGetGhostDataList{},
			RequestCtor:     func() message.Body { return &RequestGetGhostDataList{} },
			Response:        &GetGhostDataListResponse{},
			ResponseCtor:    func() message.Body { return &GetGhostDataListResponse{} },
			ExpectsResponse: true,
		},

		// break-in (invasions)
		message.Entry{
			Opcode:          opRequestGetBreakInTargetList,
			Request:         &RequestGetBreakInTargetList{},
			RequestCtor:     func() message.Body { return &RequestGetBreakInTargetList{} },
			Response:        &GetBreakInTargetListResponse{},
			ResponseCtor:    func() message.Body { return &GetBreakInTargetListResponse{} },
			ExpectsResponse: true,
		},
		message.Entry{
			Opcode:      opRequestBreakInTarget,
			Request:     &RequestBreakInTarget{},
			RequestCtor: func() message.Body { return &RequestBreakInTarget{} },
		},
		message.Entry{
			Opcode:      opRequestRejectBreakInTarget,
			Request:     &RequestRejectBreakInTarget{},
			RequestCtor: func() message.Body { return &RequestRejectBreakInTarget{} },
		},
		message.Entry{
			Opcode:      opPushRequestBreakInTarget,
			Request:     &PushRequestBreakInTarget{},
			RequestCtor: func() message.Body { return &PushRequestBreakInTarget{} },
		},
		message.Entry{
			Opcode:      opPushRequestRejectBreakInTarget,
			Request:     &PushRequestRejectBreakInTarget{},
			RequestCtor: func() message.Body { return &PushRequestRejectBreakInTarget{} },
		},

		// visitors (co-op summoning pools)
		message.Entry{
			Opcode:          opRequestGetVisitorList,
			Request:         &RequestGetVisitorList{},
			RequestCtor:     func() message.Body { return &RequestGetVisitorList{} },
			Response:        &GetVisitorListResponse{},
			ResponseCtor:    func() message.Body { return &GetVisitorListResponse{} },
			ExpectsResponse: true,
		},
		message.Entry{
			Opcode:      opRequestVisit,
			Request:     &RequestVisit{},
			RequestCtor: func() message.Body { return &RequestVisit{} },
		},
		message.Entry{
			Opcode:      opRequestRejectVisit,
			Request:     &RequestRejectVisit{},
			RequestCtor: func() message.Body { return &RequestRejectVisit{} },
		},
		message.Entry{
			Opcode:      opPushRequestVisit,
			Request:     &PushRequestVisit{},
			RequestCtor: func() message.Body { return &PushRequestVisit{} },
		},
		message.Entry{
			Opcode:      opPushRequestRejectVisit,
			Request:     &PushRequestRejectVisit{},
			RequestCtor: func() message.Body { return &PushRequestRejectVisit{} },
		},
		message.Entry{
			Opcode:      opPushRequestRemoveVisitor,
			Request:     &PushRequestRemoveVisitor{},
			RequestCtor: func() message.Body { return &PushRequestRemoveVisitor{} },
		},

		// quick match
		message.Entry{
			Opcode:      opRequestRegisterQuickMatch,
			Request:     &RequestRegisterQuickMatch{},
			RequestCtor: func() message.Body { return &RequestRegisterQuickMatch{} },
		},
		message.Entry{
			Opcode:      opRequestUpdateQuickMatch,
			Request:     &RequestUpdateQuickMatch{},
			RequestCtor: func() message.Body { return &RequestUpdateQuickMatch{} },
		},
		message.Entry{
			Opcode:      opRequestUnregisterQuickMatch,
			Request:     &RequestUnregisterQuickMatch{},
			RequestCtor: func() message.Body { return &RequestUnregisterQuickMatch{} },
		},
		message.Entry{
			Opcode:          opRequestSearchQuickMatch,
			Request:         &RequestSearchQuickMatch{},
			RequestCtor:     func() message.Body { return &RequestSearchQuickMatch{} },
			Response:        &SearchQuickMatchResponse{},
			ResponseCtor:    func() message.Body { return &SearchQuickMatchResponse{} },
			ExpectsResponse: true,
		},
		message.Entry{
			Opcode:      opRequestJoinQuickMatch,
			Request:     &RequestJoinQuickMatch{},
			RequestCtor: func() message.Body { return &RequestJoinQuickMatch{} },
		},
		message.Entry{
			Opcode:      opPushRequestJoinQuickMatch,
			Request:     &PushRequestJoinQuickMatch{},
			RequestCtor: func() message.Body { return &PushRequestJoinQuickMatch{} },
		},
		message.Entry{
			Opcode:      opPushRequestRejectQuickMatch,
			Request:     &PushRequestRejectQuickMatch{},
			RequestCtor: func() message.Body { return &PushRequestRejectQuickMatch{} },
		},
		message.Entry{
			Opcode:      opRequestAcceptQuickMatch,
			Request:     &RequestAcceptQuickMatch{},
			RequestCtor: func() message.Body { return &RequestAcceptQuickMatch{} },
		},
		message.Entry{
			Opcode:      opRequestRejectQuickMatch,
			Request:     &RequestRejectQuickMatch{},
			RequestCtor: func() message.Body { return &RequestRejectQuickMatch{} },
		},
		message.Entry{
			Opcode:      opRequestSendQuickMatchStart,
			Request:     &RequestSendQuickMatchStart{},
			RequestCtor: func() message.Body { return &RequestSendQuickMatchStart{} },
		},
		message.Entry{
			Opcode:          opRequestSendQuickMatchResult,
			Request:         &RequestSendQuickMatchResult{},
			RequestCtor:     func() message.Body { return &RequestSendQuickMatchResult{} },
			Response:        &SendQuickMatchResultResponse{},
			ResponseCtor:    func() message.Body { return &SendQuickMatchResultResponse{} },
			ExpectsResponse: true,
		},

		// misc
		message.Entry{
			Opcode:          opRequestNotifyRingBell,
			Request:         &RequestNotifyRingBell{},
			RequestCtor:     func() message.Body { return &RequestNotifyRingBell{} },
			Response:        &RequestNotifyRingBellResponse{},
			ResponseCtor:    func() message.Body { return &RequestNotifyRingBellResponse{} },
			ExpectsResponse: true,
		},
		message.Entry{
			Opcode:      opPushRequestNotifyRingBell,
			Request:     &PushRequestNotifyRingBell{},
			RequestCtor: func() message.Body { return &PushRequestNotifyRingBell{} },
		},
		message.Entry{
			Opcode:          opRequestSendMessageToPlayers,
			Request:         &RequestSendMessageToPlayers{},
			RequestCtor:     func() message.Body { return &RequestSendMessageToPlayers{} },
			Response:        &RequestSendMessageToPlayersResponse{},
			ResponseCtor:    func() message.Body { return &RequestSendMessageToPlayersResponse{} },
			ExpectsResponse: true,
		},
		message.Entry{
			Opcode:      opPushRequestSendMessageToPlayers,
			Request:     &PushRequestSendMessageToPlayers{},
			RequestCtor: func() message.Body { return &PushRequestSendMessageToPlayers{} },
		},

		// logging
		message.Entry{
			Opcode:      opRequestLogMessage,
			Request:     &RequestLogMessage{},
			RequestCtor: func() message.Body { return &RequestLogMessage{} },
		},
	)
}
