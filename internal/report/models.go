package report

import "strings"

// Report is the structured CAS report built up over one recording session.
// Records stay nil until their section is first observed; after that they are
// only extended or overwritten, never cleared except by an explicit reset.
type Report struct {
	CheckIn      *CASCheckIn      `json:"check_in,omitempty"`
	Sitrep       *SituationUpdate `json:"situation_update,omitempty"`
	NineLine     *NineLine        `json:"nine_line,omitempty"`
	Remarks      string           `json:"remarks,omitempty"`
	Restrictions string           `json:"restrictions,omitempty"`
	BDA          string           `json:"bda,omitempty"`
	GamePlan     string           `json:"game_plan,omitempty"`
}

// CASCheckIn holds fields extracted from an aircraft check-in call.
// Ordnance is append-only: weapons called out across separate transmissions
// accumulate. ControlType and ControlLabel are always set as a pair.
type CASCheckIn struct {
	Callsign     string `json:"callsign,omitempty"`
	MissionID    string `json:"mission_id,omitempty"`
	Aircraft     string `json:"aircraft,omitempty"`
	Position     string `json:"position,omitempty"`
	Ordnance     string `json:"ordnance,omitempty"`
	Playtime     string `json:"playtime,omitempty"`
	Capabilities string `json:"capabilities,omitempty"`
	LaserCode    string `json:"laser_code,omitempty"`
	VDLCode      string `json:"vdl_code,omitempty"`
	AbortCode    string `json:"abort_code,omitempty"`
	ControlType  string `json:"control_type,omitempty"`
	ControlLabel string `json:"control_label,omitempty"`
}

// SituationUpdate holds the ground picture as relayed by the JTAC.
type SituationUpdate struct {
	Threats            string `json:"threats,omitempty"`
	Targets            string `json:"targets,omitempty"`
	Friendlies         string `json:"friendlies,omitempty"`
	Artillery          string `json:"artillery,omitempty"`
	ClearanceAuthority string `json:"clearance_authority,omitempty"`
	Ordnance           string `json:"ordnance,omitempty"`
	Remarks            string `json:"remarks,omitempty"`
}

// IsEmpty reports whether no situation-update field has been set.
func (s *SituationUpdate) IsEmpty() bool {
	return s.Threats == "" && s.Targets == "" && s.Friendlies == "" &&
		s.Artillery == "" && s.ClearanceAuthority == "" && s.Ordnance == "" &&
		s.Remarks == ""
}

// NineLine holds the nine positional lines of the attack brief, keyed 1-9:
// 1 initial point, 2 heading, 3 distance, 4 elevation, 5 target description,
// 6 mark type, 7 friendlies, 8 egress, 9 remarks.
type NineLine struct {
	IP         string `json:"ip,omitempty"`
	Heading    string `json:"heading,omitempty"`
	Distance   string `json:"distance,omitempty"`
	Elevation  string `json:"elevation,omitempty"`
	Target     string `json:"target,omitempty"`
	Mark       string `json:"mark,omitempty"`
	Friendlies string `json:"friendlies,omitempty"`
	Egress     string `json:"egress,omitempty"`
	Remarks    string `json:"remarks,omitempty"`
}

// Line returns the value of line n (1-9), or "" for out-of-range n.
func (n *NineLine) Line(num int) string {
	switch num {
	case 1:
		return n.IP
	case 2:
		return n.Heading
	case 3:
		return n.Distance
	case 4:
		return n.Elevation
	case 5:
		return n.Target
	case 6:
		return n.Mark
	case 7:
		return n.Friendlies
	case 8:
		return n.Egress
	case 9:
		return n.Remarks
	}
	return ""
}

// SetLine overwrites line num with value. Explicit line-number assignments are
// last-spoken-wins, so a repeated "line 3" replaces the earlier value.
func (n *NineLine) SetLine(num int, value string) {
	switch num {
	case 1:
		n.IP = value
	case 2:
		n.Heading = value
	case 3:
		n.Distance = value
	case 4:
		n.Elevation = value
	case 5:
		n.Target = value
	case 6:
		n.Mark = value
	case 7:
		n.Friendlies = value
	case 8:
		n.Egress = value
	case 9:
		n.Remarks = value
	}
}

// AppendLine appends value to line num with a space separator. Used by the
// keyword-inference fallback, which never overwrites.
func (n *NineLine) AppendLine(num int, value string) {
	n.SetLine(num, AppendText(n.Line(num), value))
}

// IsEmpty reports whether no report section has been observed yet.
func (r *Report) IsEmpty() bool {
	return r.CheckIn == nil && r.Sitrep == nil && r.NineLine == nil &&
		r.Remarks == "" && r.Restrictions == "" && r.BDA == "" && r.GamePlan == ""
}

// Clone returns a deep copy of the report for read-only consumers.
func (r *Report) Clone() *Report {
	out := &Report{
		Remarks:      r.Remarks,
		Restrictions: r.Restrictions,
		BDA:          r.BDA,
		GamePlan:     r.GamePlan,
	}
	if r.CheckIn != nil {
		ci := *r.CheckIn
		out.CheckIn = &ci
	}
	if r.Sitrep != nil {
		su := *r.Sitrep
		out.Sitrep = &su
	}
	if r.NineLine != nil {
		nl := *r.NineLine
		out.NineLine = &nl
	}
	return out
}

// SetIfEmpty assigns value to *field only if the field is still unset.
// This is the fill-in-blanks-only rule for repeated calls.
func SetIfEmpty(field *string, value string) {
	if *field == "" && value != "" {
		*field = strings.TrimSpace(value)
	}
}

// AppendText joins two text fragments with a single space, skipping empties.
func AppendText(existing, addition string) string {
	addition = strings.TrimSpace(addition)
	if addition == "" {
		return existing
	}
	if existing == "" {
		return addition
	}
	return existing + " " + addition
}

// AppendList joins list items with ", ", skipping empties and repeats already
// present in the list. An existing counted entry like "2x GBU-12" covers a
// later bare "GBU-12"; "GBU-120" does not. Used for the append-only ordnance
// field.
func AppendList(existing, item string) string {
	item = strings.TrimSpace(item)
	if item == "" {
		return existing
	}
	if existing == "" {
		return item
	}
	for _, prev := range strings.Split(existing, ", ") {
		if prev == item || strings.HasSuffix(prev, " "+item) {
			return existing
		}
	}
	return existing + ", " + item
}
