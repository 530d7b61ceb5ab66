package person

// Person represents a registered person as returned by the backend.
// The id, age, profession_name, photo_url and timestamps are server-assigned;
// the client never computes or mutates them locally.
type Person struct {
	ID             int64  `json:"id"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	BirthDate      string `json:"birth_date"`
	Age            int    `json:"age"`
	ProfessionID   int64  `json:"profession_id"`
	ProfessionName string `json:"profession_name,omitempty"`
	Address        string `json:"address"`
	Phone          string `json:"phone"`
	PhotoURL       string `json:"photo_url,omitempty"`
	CreatedAt      string `json:"created_at,omitempty"`
	UpdatedAt      string `json:"updated_at,omitempty"`
}

// BirthDateLayout is the calendar-date layout used on the wire (no time component)
const BirthDateLayout = "2006-01-02"

// Photo is a binary attachment supplied with a form submission
type Photo struct {
	FileName    string
	ContentType string
	Data        []byte
}

// FormData carries the user-editable fields of a person submission.
// The JSON tags are the exact multipart/batch field names the backend expects;
// the photo travels as a separate binary part and is excluded from JSON.
type FormData struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	BirthDate    string `json:"birth_date"`
	ProfessionID int64  `json:"profession_id"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	Photo        *Photo `json:"-"`
}

// Stats is the read-only dashboard aggregate recomputed by the server
type Stats struct {
	TotalPersons         int            `json:"total_persons"`
	ProfessionsCount     map[string]int `json:"professions_count"`
	AgeRanges            map[string]int `json:"age_ranges"`
	MonthlyRegistrations map[string]int `json:"monthly_registrations"`
}
