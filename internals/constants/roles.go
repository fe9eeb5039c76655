package constants

import (
	"fmt"
	"strings"
)

type Role string

const (
	RoleAdminTI  Role = "admin_ti"
	RoleAdminDir Role = "admin_dir"
	RoleCoord    Role = "coord"
	RoleProf     Role = "prof"
	RoleSec      Role = "sec"
	RoleGuest    Role = "guest"
)

var AllRoles = []Role{
	RoleAdminTI,
	RoleAdminDir,
	RoleCoord,
	RoleProf,
	RoleSec,
	RoleGuest,
}

// ParseRole rejects anything outside AllRoles. Empty input is an error too;
// callers decide their own default.
func ParseRole(raw string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range AllRoles {
		if r == known {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown role %q", raw)
}

func (r Role) Label() string {
	switch r {
	case RoleAdminTI:
		return "Admin TI"
	case RoleAdminDir:
		return "Direção"
	case RoleCoord:
		return "Coordenação"
	case RoleProf:
		return "Professor"
	case RoleSec:
		return "Secretaria"
	case RoleGuest:
		return "Convidado"
	}
	return string(r)
}

// ==========================
// Permissions
// ==========================

type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

type Resource string

const (
	ResStudents       Resource = "students"
	ResTeachers       Resource = "teachers"
	ResSubjects       Resource = "subjects"
	ResClasses        Resource = "classes"
	ResAssignments    Resource = "assignments"
	ResGrades         Resource = "grades"
	ResFormations     Resource = "formations"
	ResKnowledgeAreas Resource = "knowledge_areas"
	ResSubAreas       Resource = "sub_areas"
	ResSettings       Resource = "settings"
	ResAcademicYears  Resource = "academic_years"
	ResUsers          Resource = "users"
	ResStats          Resource = "stats"
)

// adminOnlyResources are writable only by admin_ti.
var adminOnlyResources = map[Resource]bool{
	ResSettings:      true,
	ResAcademicYears: true,
	ResUsers:         true,
}

var coordWritable = map[Resource]bool{
	ResSubjects:       true,
	ResClasses:        true,
	ResAssignments:    true,
	ResGrades:         true,
	ResFormations:     true,
	ResKnowledgeAreas: true,
	ResSubAreas:       true,
}

var guestReadable = map[Resource]bool{
	ResStudents: true,
	ResTeachers: true,
	ResSubjects: true,
	ResClasses:  true,
	ResStats:    true,
}

// Can is the single source of truth for server-side authorization.
func Can(role Role, action Action, res Resource) bool {
	switch role {
	case RoleAdminTI:
		return true

	case RoleAdminDir:
		if action == ActionRead {
			return true
		}
		return !adminOnlyResources[res]

	case RoleCoord:
		if action == ActionRead {
			return true
		}
		return coordWritable[res]

	case RoleProf:
		if action == ActionRead {
			return res != ResUsers
		}
		return res == ResGrades && (action == ActionCreate || action == ActionUpdate)

	case RoleSec:
		if action == ActionRead {
			return res != ResUsers
		}
		switch res {
		case ResStudents, ResTeachers:
			return true
		case ResClasses:
			return action != ActionDelete
		}
		return false

	case RoleGuest:
		return action == ActionRead && guestReadable[res]
	}
	return false
}

func ForbiddenMessage(action Action, res Resource) string {
	return fmt.Sprintf("Access denied: your role cannot %s %s.", action, strings.ReplaceAll(string(res), "_", " "))
}
