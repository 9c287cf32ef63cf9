package domain

type CtxKey string

const (
	KeyUserID    CtxKey = "UserID"
	KeyUserType  CtxKey = "UserType"
	KeyRequestID CtxKey = "RequestID"
)
