package devserver

import (
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// BaseModel provides common fields and an auto-generated ULID id
type BaseModel struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(26)"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// BeforeCreate generates a ULID for the ID field if it's empty
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = ulid.Make().String()
	}
	return nil
}

// Account is a console user stored in the dev server's database
type Account struct {
	BaseModel
	Username     string `json:"username" gorm:"uniqueIndex;not null"`
	Email        string `json:"email"`
	PasswordHash string `json:"-" gorm:"not null"`
	Status       string `json:"status" gorm:"not null;default:ACTIVE"` // ACTIVE, DISABLED
	Roles        string `json:"-"`                                     // comma-separated role names
	Privileges   string `json:"-"`                                     // comma-separated privilege names
}

// RoleList returns the account's roles as a slice
func (a *Account) RoleList() []string {
	return splitList(a.Roles)
}

// PrivilegeList returns the account's granted privileges as a slice
func (a *Account) PrivilegeList() []string {
	return splitList(a.Privileges)
}

// HasPrivilege reports whether the account holds the named privilege
func (a *Account) HasPrivilege(name string) bool {
	for _, p := range a.PrivilegeList() {
		if p == name {
			return true
		}
	}
	return false
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// AutoMigrate runs database migrations
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&Account{})
}

// seedAccounts creates the demo users on first start. admin holds every
// privilege, viewer can only read.
func seedAccounts(db *gorm.DB) error {
	var count int64
	if err := db.Model(&Account{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	accounts := []struct {
		username   string
		email      string
		password   string
		roles      string
		privileges string
	}{
		{
			username:   "admin",
			email:      "admin@clusterview.local",
			password:   "admin123",
			roles:      "ADMIN",
			privileges: "VIEW_CLUSTER,MANAGE_CLUSTER,VIEW_HOST,MANAGE_HOST,VIEW_SERVICE,MANAGE_SERVICE,VIEW_MONITOR,VIEW_LOG",
		},
		{
			username:   "viewer",
			email:      "viewer@clusterview.local",
			password:   "viewer123",
			roles:      "VIEWER",
			privileges: "VIEW_CLUSTER,VIEW_HOST,VIEW_SERVICE,VIEW_MONITOR",
		},
	}

	for _, a := range accounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(a.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		account := &Account{
			Username:     a.username,
			Email:        a.email,
			PasswordHash: string(hash),
			Status:       "ACTIVE",
			Roles:        a.roles,
			Privileges:   a.privileges,
		}
		if err := db.Create(account).Error; err != nil {
			return err
		}
	}
	return nil
}
