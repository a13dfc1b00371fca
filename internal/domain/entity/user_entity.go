package entity

// PhotoType classifies a stored user photo.
type PhotoType int32

const (
	PhotoTypeUser     PhotoType = 0
	PhotoTypeEmirates PhotoType = 1
	PhotoTypePassport PhotoType = 2
)

// ParsePhotoType maps a wire value onto a known PhotoType.
// Unknown values fall back to PhotoTypeUser.
func ParsePhotoType(v int32) PhotoType {
	switch PhotoType(v) {
	case PhotoTypeEmirates, PhotoTypePassport:
		return PhotoType(v)
	default:
		return PhotoTypeUser
	}
}

func (t PhotoType) DisplayName() string {
	switch t {
	case PhotoTypeEmirates:
		return "Emirates Photo"
	case PhotoTypePassport:
		return "Passport Photo"
	default:
		return "User Photo"
	}
}

// Photo is read-only in the login flow; it is owned by its User.
type Photo struct {
	ID         string    `json:"id"`
	Type       PhotoType `json:"type"`
	URL        string    `json:"url"`
	Filename   string    `json:"filename"`
	Size       int64     `json:"size"`
	MimeType   string    `json:"mime_type"`
	UploadedAt string    `json:"uploaded_at"`
}

// User is the signed-in profile as returned by the user service.
//
// A User is never partially constructed: missing data is carried as zero
// values, and Photos is always a non-nil slice once normalized.
type User struct {
	ID          string  `json:"id"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Email       string  `json:"email"`
	CountryCode string  `json:"country_code"`
	Phone       string  `json:"phone"`
	IsVerified  bool    `json:"is_verified"`
	IsActive    bool    `json:"is_active"`
	Photos      []Photo `json:"photos"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// Normalized returns a copy of u whose Photos slice is non-nil.
func (u User) Normalized() User {
	if u.Photos == nil {
		u.Photos = []Photo{}
	} else {
		u.Photos = append([]Photo(nil), u.Photos...)
	}
	return u
}

func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}

// Account pairs a User with its stored bcrypt password hash.
// Only the development authentication server reads accounts.
type Account struct {
	User         User
	PasswordHash string
}
