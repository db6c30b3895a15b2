package entities

// Capability is an operation class gated by the role policy table.
type Capability string

const (
	CapabilityManageAccounts      Capability = "manage_accounts"
	CapabilityCreateClassroom     Capability = "create_classroom"
	CapabilityDeleteClassroom     Capability = "delete_classroom"
	CapabilityReadClassroom       Capability = "read_classroom"
	CapabilityManageTask          Capability = "manage_task"
	CapabilityManageMaterial      Capability = "manage_material"
	CapabilityReadMaterial        Capability = "read_material"
	CapabilityCreateSubmission    Capability = "create_submission"
	CapabilityDeleteOwnSubmission Capability = "delete_own_submission"
	CapabilityReadSubmission      Capability = "read_submission"
	CapabilityGradeSubmission     Capability = "grade_submission"
	CapabilityManageRoster        Capability = "manage_roster"
)

// ResourceCheck names one ownership/possession predicate the guard runs
// against resources referenced by the request path.
type ResourceCheck string

const (
	// CheckClassroomAccess passes for admins, the owning professor, and
	// enrolled students.
	CheckClassroomAccess ResourceCheck = "classroom_access"
	// CheckClassroomOwner passes for admins and the owning professor only.
	CheckClassroomOwner ResourceCheck = "classroom_owner"
	// CheckTaskInClassroom requires the path task to exist and belong to the
	// path classroom.
	CheckTaskInClassroom ResourceCheck = "task_in_classroom"
	// CheckSubmissionOwner requires a student principal to be the submission
	// author. Admins and professors bypass it: they reach submissions only
	// through classroom access, which an earlier check has already proven.
	CheckSubmissionOwner ResourceCheck = "submission_owner"
	// CheckMaterialOwner requires a professor principal to be the material
	// uploader. Admins bypass it.
	CheckMaterialOwner ResourceCheck = "material_owner"
)

// RouteSpec is the declarative authorization contract of one protected route:
// the capability the caller's role must hold plus an ordered list of resource
// checks. The guard evaluates existence of every referenced resource first,
// then the capability, then the checks in order, short-circuiting on the
// first failure.
type RouteSpec struct {
	Capability Capability
	Checks     []ResourceCheck
}
