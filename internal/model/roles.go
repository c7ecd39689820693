package model

// Role is the closed set of element kinds the engine understands.
// Raw accessibility roles are mapped onto it once, at read time, so the
// rest of the engine pattern-matches on a tagged value instead of
// dispatching on open-ended role strings.
type Role string

const (
	RoleWindow     Role = "window"
	RoleSheet      Role = "sheet"
	RoleButton     Role = "btn"
	RoleCheckbox   Role = "chk"
	RoleText       Role = "txt"
	RoleTextField  Role = "field"
	RoleTable      Role = "table"
	RoleRow        Role = "row"
	RoleCell       Role = "cell"
	RoleColumn     Role = "col"
	RoleScroll     Role = "scroll"
	RoleGroup      Role = "group"
	RoleSplitGroup Role = "split"
	RoleRadioGroup Role = "radiogroup"
	RoleRadio      Role = "radio"
	RoleProgress   Role = "progress"
	RoleBusy       Role = "busy"
	RoleImage      Role = "img"
	RoleToolbar    Role = "toolbar"
	RoleUnknown    Role = "other"
)

// RoleMap maps macOS AXRole values to tagged role codes.
var RoleMap = map[string]Role{
	"AXWindow":            RoleWindow,
	"AXSheet":             RoleSheet,
	"AXButton":            RoleButton,
	"AXCheckBox":          RoleCheckbox,
	"AXStaticText":        RoleText,
	"AXTextField":         RoleTextField,
	"AXTable":             RoleTable,
	"AXOutline":           RoleTable,
	"AXRow":               RoleRow,
	"AXCell":              RoleCell,
	"AXColumn":            RoleColumn,
	"AXScrollArea":        RoleScroll,
	"AXGroup":             RoleGroup,
	"AXSplitGroup":        RoleSplitGroup,
	"AXRadioGroup":        RoleRadioGroup,
	"AXRadioButton":       RoleRadio,
	"AXProgressIndicator": RoleProgress,
	"AXBusyIndicator":     RoleBusy,
	"AXImage":             RoleImage,
	"AXToolbar":           RoleToolbar,
}

// Window subroles used to classify top-level surfaces.
const (
	SubroleStandardWindow = "AXStandardWindow"
	SubroleDialog         = "AXDialog"
	SubroleSystemDialog   = "AXSystemDialog"
)

// MapRole converts a raw accessibility role to a tagged Role.
func MapRole(axRole string) Role {
	if r, ok := RoleMap[axRole]; ok {
		return r
	}
	return RoleUnknown
}
