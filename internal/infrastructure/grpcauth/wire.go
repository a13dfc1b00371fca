package grpcauth

import "github.com/luxor-app/luxor-auth/internal/domain/entity"

// Fully-qualified names of the user service.
const (
	ServiceName            = "user.UserService"
	AuthenticateUserMethod = "/" + ServiceName + "/AuthenticateUser"
)

// AuthenticateUserRequest is the request message of AuthenticateUser.
type AuthenticateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthenticateUserResponse is the response message of AuthenticateUser.
// Sub-messages are nullable on the wire.
type AuthenticateUserResponse struct {
	Response     *StandardResponse `json:"response,omitempty"`
	AccessToken  string            `json:"access_token"`
	RefreshToken string            `json:"refresh_token"`
	User         *User             `json:"user,omitempty"`
}

type StandardResponse struct {
	Success    bool              `json:"success"`
	Message    string            `json:"message"`
	StatusCode int32             `json:"status_code"`
	Timestamp  string            `json:"timestamp"`
	RequestID  string            `json:"request_id"`
	Errors     []string          `json:"errors,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

type User struct {
	ID          string   `json:"id"`
	FirstName   string   `json:"first_name"`
	LastName    string   `json:"last_name"`
	Email       string   `json:"email"`
	CountryCode string   `json:"country_code"`
	Phone       string   `json:"phone"`
	IsVerified  bool     `json:"is_verified"`
	IsActive    bool     `json:"is_active"`
	Photos      []*Photo `json:"photos,omitempty"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

type Photo struct {
	ID         string `json:"id"`
	Type       int32  `json:"type"`
	URL        string `json:"url"`
	Filename   string `json:"filename"`
	Size       int64  `json:"size"`
	MimeType   string `json:"mime_type"`
	UploadedAt string `json:"uploaded_at"`
}

// ToDomain converts a wire response into an AuthResult. Missing
// sub-messages become zero values.
func (r *AuthenticateUserResponse) ToDomain() *entity.AuthResult {
	return &entity.AuthResult{
		Response:     r.Response.toDomain(),
		AccessToken:  r.AccessToken,
		RefreshToken: r.RefreshToken,
		User:         r.User.toDomain(),
	}
}

func (s *StandardResponse) toDomain() entity.StandardResponse {
	if s == nil {
		return entity.StandardResponse{Errors: []string{}, Metadata: map[string]string{}}
	}
	out := entity.StandardResponse{
		Success:    s.Success,
		Message:    s.Message,
		StatusCode: s.StatusCode,
		Timestamp:  s.Timestamp,
		RequestID:  s.RequestID,
		Errors:     append([]string{}, s.Errors...),
		Metadata:   make(map[string]string, len(s.Metadata)),
	}
	for k, v := range s.Metadata {
		out.Metadata[k] = v
	}
	return out
}

func (u *User) toDomain() entity.User {
	if u == nil {
		return entity.User{Photos: []entity.Photo{}}
	}
	photos := make([]entity.Photo, 0, len(u.Photos))
	for _, p := range u.Photos {
		if p == nil {
			continue
		}
		photos = append(photos, entity.Photo{
			ID:         p.ID,
			Type:       entity.ParsePhotoType(p.Type),
			URL:        p.URL,
			Filename:   p.Filename,
			Size:       p.Size,
			MimeType:   p.MimeType,
			UploadedAt: p.UploadedAt,
		})
	}
	return entity.User{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		CountryCode: u.CountryCode,
		Phone:       u.Phone,
		IsVerified:  u.IsVerified,
		IsActive:    u.IsActive,
		Photos:      photos,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// FromDomain builds the wire response for an AuthResult.
func FromDomain(res *entity.AuthResult) *AuthenticateUserResponse {
	if res == nil {
		return &AuthenticateUserResponse{}
	}
	sr := res.Response
	out := &AuthenticateUserResponse{
		Response: &StandardResponse{
			Success:    sr.Success,
			Message:    sr.Message,
			StatusCode: sr.StatusCode,
			Timestamp:  sr.Timestamp,
			RequestID:  sr.RequestID,
			Errors:     sr.Errors,
			Metadata:   sr.Metadata,
		},
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
	}
	u := res.User
	wu := &User{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		CountryCode: u.CountryCode,
		Phone:       u.Phone,
		IsVerified:  u.IsVerified,
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
	for _, p := range u.Photos {
		wu.Photos = append(wu.Photos, &Photo{
			ID:         p.ID,
			Type:       int32(p.Type),
			URL:        p.URL,
			Filename:   p.Filename,
			Size:       p.Size,
			MimeType:   p.MimeType,
			UploadedAt: p.UploadedAt,
		})
	}
	out.User = wu
	return out
}
