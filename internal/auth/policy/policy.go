// Package policy decides which admin roles may perform which actions.
package policy

import "github.com/hireai/waitlist-manager/internal/entity"

type Action string

const (
	WaitlistList      Action = "waitlist:list"
	WaitlistSetStatus Action = "waitlist:set_status"
	WaitlistStats     Action = "waitlist:stats"
	AnalyticsRead     Action = "analytics:read"
	AnalyticsExport   Action = "analytics:export"
	AnalyticsArchive  Action = "analytics:archive"
	AdminProfile      Action = "admin:profile"
	AdminManage       Action = "admin:manage"
)

var adminActions = []Action{
	WaitlistList,
	WaitlistSetStatus,
	WaitlistStats,
	AnalyticsRead,
	AnalyticsExport,
	AnalyticsArchive,
	AdminProfile,
}

var table = map[entity.AdminRole]map[Action]bool{
	entity.AdminRoleAdmin:      set(adminActions...),
	entity.AdminRoleSuperAdmin: set(append(append([]Action{}, adminActions...), AdminManage)...),
}

func set(actions ...Action) map[Action]bool {
	m := make(map[Action]bool, len(actions))
	for _, a := range actions {
		m[a] = true
	}
	return m
}

// Allow reports whether role may perform action. Unknown roles and actions
// are denied.
func Allow(role entity.AdminRole, action Action) bool {
	return table[role][action]
}
