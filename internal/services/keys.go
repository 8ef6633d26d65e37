package services

// Key layout in the KV store. Every record is a whole JSON value.
const (
	sessionKeyPrefix = "session:"
	queueKeyPrefix   = "queue:"
	policyKeyPrefix  = "policy:"
)

func sessionKey(sessionID string) string { return sessionKeyPrefix + sessionID }
func queueKey(sessionID string) string   { return queueKeyPrefix + sessionID }
func policyKey(ownerID string) string    { return policyKeyPrefix + ownerID }
