package rbac

const (
	RoleTutor = "tutor"
	RoleAdmin = "admin"
)

// Permissions used by the HTTP layer.
const (
	PermWordsView   = "words:view"
	PermWordsEdit   = "words:edit"
	PermWordsImport = "words:import"
	PermStatsView   = "stats:view"
	PermStatsClear  = "stats:clear"
	PermContentMake = "content:generate"
	PermPinChange   = "pin:change"
)

var AllPermissions = []string{
	PermWordsView, PermWordsEdit, PermWordsImport,
	PermStatsView, PermStatsClear,
	PermContentMake,
	PermPinChange,
}

var RolePermissions = map[string][]string{
	RoleTutor: {
		"words:*",
		"stats:*",
		"content:*",
		PermPinChange,
	},
	RoleAdmin: {
		"*", // everything
	},
}
