package models

// User is one account record. Email is the unique key (lowercased and
// trimmed before it gets here). Salt and PasswordHash are standard-base64
// strings and are always written together in the same record write; a
// plaintext password is never stored.
type User struct {
	Email        string `dynamodbav:"email" db:"email"`
	Role         Role   `dynamodbav:"role" db:"role"`
	SchoolID     string `dynamodbav:"school_id" db:"school_id"`
	DOB          string `dynamodbav:"dob" db:"dob"`
	Encryption   string `dynamodbav:"enc" db:"enc"`
	Salt         string `dynamodbav:"salt" db:"salt"`
	PasswordHash string `dynamodbav:"pwh" db:"pwh"`
	CreatedAt    int64  `dynamodbav:"created_at" db:"created_at"`
}
