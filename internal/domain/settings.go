package domain

import "time"

// SettingLandApplicationsOpen gates creation of new land applications. It is
// consulted by StartApplication only; existing drafts are unaffected when the
// flag is toggled off. Only the current value is stored.
const SettingLandApplicationsOpen = "land_applications_open"

type Setting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedOn time.Time `json:"updated_on"`
}
