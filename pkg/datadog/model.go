package datadog

// SLO urls don't address the SLO in the path: the UI serializes the open
// panels into the "sp" query parameter as a JSON array. These models unpack
// just enough of it to get at the SLO ids.

// sloSPElement is one element of the "sp" array.
type sloSPElement struct {
	P panel  `json:"p"`
	I string `json:"i"`
}

// panel carries the panel id, the active tab and the time frame.
type panel struct {
	ID        string    `json:"id"`
	ActiveTab string    `json:"activeTab"`
	TimeFrame timeFrame `json:"timeFrame"`
}

// timeFrame is the time selection of a panel.
type timeFrame struct {
	Start    int64  `json:"start"`
	End      int64  `json:"end"`
	Mode     string `json:"mode"`
	FromUser bool   `json:"fromUser"`
	Paused   bool   `json:"paused"`
}
