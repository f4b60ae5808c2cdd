package ecode

import "fmt"

const (
	requiredMsg = "required"
	invalidMsg  = "invalid"
	notExistMsg = "does not exist"
	notOwnerMsg = "is not owned by the caller"
)

func withSubject(msg string, k []string) string {
	if len(k) > 0 && k[0] != "" {
		return fmt.Sprintf("%s %s", k[0], msg)
	}
	return msg
}

// FieldIsRequired returns field required message
func FieldIsRequired(k ...string) string { return withSubject(requiredMsg, k) }

// FieldIsInvalid returns field invalid message
func FieldIsInvalid(k ...string) string { return withSubject(invalidMsg, k) }

// NotExist returns not exist message
func NotExist(k ...string) string { return withSubject(notExistMsg, k) }

// NotOwned returns ownership failure message
func NotOwned(k ...string) string { return withSubject(notOwnerMsg, k) }
