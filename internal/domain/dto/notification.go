package dto

type UpdatePreferences struct {
	EmailMatchReminder bool `json:"emailMatchReminder"`
	EmailMatchUpdate   bool `json:"emailMatchUpdate"`
	EmailPasswordReset bool `json:"emailPasswordReset"`
	EmailVerification  bool `json:"emailVerification"`
	PushJoinRequest    bool `json:"pushJoinRequest"`
	PushInvitation     bool `json:"pushInvitation"`
	PushMatchUpdate    bool `json:"pushMatchUpdate"`
	PushChatMessage    bool `json:"pushChatMessage"`
	PushTeamUpdate     bool `json:"pushTeamUpdate"`
	PushMatchReminder  bool `json:"pushMatchReminder"`
}

type RegisterPushToken struct {
	ExpoToken string `json:"expoToken" validate:"required"`
}
