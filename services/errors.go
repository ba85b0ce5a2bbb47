package services

import "errors"

// Shared sentinel errors, mapped to HTTP statuses in handlers.
var (
	// Not found
	ErrNotFound           = errors.New("requested resource not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrTeamNotFound       = errors.New("team not found")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrMatchNotFound      = errors.New("match not found")
	ErrEventNotFound      = errors.New("match event not found")
	ErrVenueNotFound      = errors.New("venue not found")
	ErrSanctionNotFound   = errors.New("sanction not found")

	// Validation / business rules
	ErrValidationFailed     = errors.New("validation failed")
	ErrPasswordTooShort     = errors.New("password must be at least 8 characters")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrTokenMalformed       = errors.New("invitation token is malformed")
	ErrTokenExpired         = errors.New("invitation token has expired")
	ErrTokenWrongKind       = errors.New("invitation token is for a different role")
	ErrTournamentDateRange  = errors.New("tournament end date must be after start date")

	// Conflicts
	ErrEmailTaken          = errors.New("email address is already in use")
	ErrTeamNameTaken       = errors.New("team name is already in use")
	ErrSquadNumberTaken    = errors.New("squad number is already in use on this team")
	ErrAlreadyEnrolled     = errors.New("team is already enrolled in this tournament")

	// Authorization
	ErrForbidden            = errors.New("operation not allowed for the current user")
	ErrNotAssignedReferee   = errors.New("caller is not the assigned referee of this match")
	ErrNotTeamCaptain       = errors.New("only the team captain can perform this action")
	ErrNotTournamentAdmin   = errors.New("only the owning administrator can perform this action")

	// Match lifecycle
	ErrMatchNotScheduled  = errors.New("match is not in scheduled state")
	ErrMatchNotInProgress = errors.New("match is not in progress")
	ErrMatchFinished      = errors.New("match is finished and immutable")
)
