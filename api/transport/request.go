package transport

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TaskRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Status      string   `json:"status"`
	Priority    string   `json:"priority"`
	Repeat      string   `json:"repeat"`
	Days        []string `json:"days"`
	Dates       []string `json:"dates"`
	Time        string   `json:"time"`
	TaskTime    string   `json:"taskTime"`
}

type DirectNotificationRequest struct {
	DeviceToken string `json:"deviceToken"`
	Title       string `json:"title"`
	Body        string `json:"body"`
}

type RelayNotificationRequest struct {
	ExpoPushToken string `json:"expoPushToken"`
	Title         string `json:"title"`
	Body          string `json:"body"`
}

type UserNotificationRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// DeviceTokenUpdateRequest carries whichever tokens the client wants to
// persist; nil fields are left untouched.
type DeviceTokenUpdateRequest struct {
	DeviceToken   *string `json:"deviceToken"`
	ExpoPushToken *string `json:"expoPushToken"`
}
