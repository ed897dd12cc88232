package models

import (
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// OAuthClient is a delivery integration allowed to read and drain the delivery queue
type OAuthClient struct {
	ID            string         `gorm:"primaryKey" json:"client_id"`
	Secret        string         `gorm:"not null" json:"-"` // bcrypt hash
	Name          string         `json:"name"`
	Domain        string         `json:"domain"`
	StaffMemberID uint           `json:"staff_member_id"` // staff member the integration acts for
	Scopes        string         `json:"scopes"`          // space-separated
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (OAuthClient) TableName() string {
	return "oauth_clients"
}

func (c *OAuthClient) GetID() string {
	return c.ID
}

func (c *OAuthClient) GetSecret() string {
	return c.Secret
}

func (c *OAuthClient) GetDomain() string {
	return c.Domain
}

func (c *OAuthClient) IsPublic() bool {
	return false
}

func (c *OAuthClient) GetUserID() string {
	if c.StaffMemberID == 0 {
		return ""
	}
	return strconv.FormatUint(uint64(c.StaffMemberID), 10)
}

// VerifyPassword compares a plain secret against the stored bcrypt hash
func (c *OAuthClient) VerifyPassword(secret string) bool {
	return bcrypt.CompareHashAndPassword([]byte(c.Secret), []byte(secret)) == nil
}
