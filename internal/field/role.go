package field

// Role is an orthogonal semantic tag on a field. Where a role and a
// component both claim a value, the role wins — except RoleTitle, which only
// affects presentational decoration, never the base formatter.
type Role int

const (
	RoleNone Role = iota
	RoleTitle
	RoleStatus
	RoleBadge
	RoleRating
	RoleCode
	RolePerson
	RoleDueDate
	RoleEntityType
	RoleIcon
	RoleAvatar
)

var roleNames = map[Role]string{
	RoleNone:       "",
	RoleTitle:      "title",
	RoleStatus:     "status",
	RoleBadge:      "badge",
	RoleRating:     "rating",
	RoleCode:       "code",
	RolePerson:     "person",
	RoleDueDate:    "duedate",
	RoleEntityType: "entityType",
	RoleIcon:       "icon",
	RoleAvatar:     "avatar",
}

var roleAliases = map[string]Role{
	"title":      RoleTitle,
	"name":       RoleTitle,
	"status":     RoleStatus,
	"badge":      RoleBadge,
	"rating":     RoleRating,
	"code":       RoleCode,
	"person":     RolePerson,
	"assignee":   RolePerson,
	"duedate":    RoleDueDate,
	"entitytype": RoleEntityType,
	"icon":       RoleIcon,
	"avatar":     RoleAvatar,
	"image":      RoleAvatar,
}

// ParseRole resolves a free-form role string. Unknown strings resolve to
// RoleNone.
func ParseRole(s string) Role {
	if role, ok := roleAliases[normalizeKindName(s)]; ok {
		return role
	}
	return RoleNone
}

// String returns the canonical name for the role.
func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return ""
}
