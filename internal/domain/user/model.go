package user

// Principal identifies the authenticated caller. Identity resolution happens
// upstream of the engine; every use case receives the user id explicitly.
type Principal struct {
	UserID      string
	DisplayName string
}
