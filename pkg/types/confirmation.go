package types

// ConfirmationRequest represents a request for user confirmation before a
// destructive operation
type ConfirmationRequest struct {
	// ID is a unique identifier for this confirmation within the operation
	ID string

	// Title is a brief, user-friendly title describing what needs confirmation
	Title string

	// Description provides detailed information about what will happen
	Description string

	// Items lists specific items that will be affected (links, directories)
	Items []string

	// Default indicates the default response if user just presses enter
	// true = default to "yes", false = default to "no"
	Default bool
}

// ConfirmationResponse records the user's answer to a ConfirmationRequest
type ConfirmationResponse struct {
	ID       string
	Approved bool
}
