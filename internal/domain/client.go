package domain

import "time"

type ClientStatus string

const (
	ClientPending   ClientStatus = "pending"
	ClientApproved  ClientStatus = "approved"
	ClientSuspended ClientStatus = "suspended"
)

// Client is a business account. New registrations start as pending and are
// moved between statuses by admin action only. Only suspended blocks login;
// pending clients can browse and fill a cart but cannot check out.
type Client struct {
	ID            int64        `json:"id"`
	Email         string       `json:"email"`
	PasswordHash  string       `json:"-"`
	CompanyName   string       `json:"company_name"`
	ContactPerson string       `json:"contact_person"`
	Phone         string       `json:"phone,omitempty"`
	Address       string       `json:"address,omitempty"`
	Status        ClientStatus `json:"status"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

func (s ClientStatus) Valid() bool {
	switch s {
	case ClientPending, ClientApproved, ClientSuspended:
		return true
	}
	return false
}
