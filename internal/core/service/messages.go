package service

// Notices shown on the portal pages.
const (
	MsgEmployeeIDRequired  = "Employee ID is required"
	MsgEmployeeAdded       = "Employee added successfully"
	MsgEmployeeUpdated     = "Employee updated successfully"
	MsgEmployeeDeleted     = "Employee deleted successfully"
	MsgFixFormErrors       = "Please correct the errors in the form"
	MsgSubmissionInFlight  = "A submission is already in progress"
	MsgEmployeeIDMissing   = "Employee ID is not provided"
	MsgProfileForbidden    = "You do not have permission to view this employee profile"
	MsgProfileFetchFailed  = "Error fetching employee data"
	MsgProfileUpdated      = "Profile updated successfully"
	MsgProfileUpdateFailed = "Error updating profile"
	MsgInvalidCredentials  = "Invalid credentials!"
)
