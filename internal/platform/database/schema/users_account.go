package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table         string
	ID            string
	Name          string
	Email         string
	Username      string
	PasswordHash  string
	AvatarID      string
	Domains       string
	LearningStyle string
	StudyTime     string
	TeamPref      string
	CreatedAt     string
	UpdatedAt     string
	DeletedAt     string

	// Unique constraint names, used to map insert violations back to the
	// conflicting field.
	EmailUnique    string
	UsernameUnique string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:         "users.account",
	ID:            "id",
	Name:          "name",
	Email:         "email",
	Username:      "username",
	PasswordHash:  "passwordhash",
	AvatarID:      "avatarid",
	Domains:       "domains",
	LearningStyle: "learningstyle",
	StudyTime:     "studytime",
	TeamPref:      "teampref",
	CreatedAt:     "createdat",
	UpdatedAt:     "updatedat",
	DeletedAt:     "deletedat",

	EmailUnique:    "uq_account_email",
	UsernameUnique: "uq_account_username",
}

func (t UserAccountTable) Columns() []string {
	return []string{
		t.ID, t.Name, t.Email, t.Username, t.PasswordHash, t.AvatarID,
		t.Domains, t.LearningStyle, t.StudyTime, t.TeamPref,
		t.CreatedAt, t.UpdatedAt, t.DeletedAt,
	}
}
