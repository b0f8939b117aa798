package config

const (
	bootstrapUsernameVar    = "BOOTSTRAP_USERNAME"
	bootstrapPasswordVar    = "BOOTSTRAP_PASSWORD"
	bootstrapPermissionsVar = "BOOTSTRAP_PERMISSIONS"
)

type BootstrapConfig interface {
	GetBootstrapUsername() string
	GetBootstrapPassword() string
	GetBootstrapPermissions() []string
}

type Bootstrap struct{}

var _ BootstrapConfig = Bootstrap{}

func (Bootstrap) GetBootstrapUsername() string {
	return GetEnv(bootstrapUsernameVar, "admin")
}

// GetBootstrapPassword returns "" when unset; a password is then generated
// on first start.
func (Bootstrap) GetBootstrapPassword() string {
	return GetEnv(bootstrapPasswordVar, "")
}

func (Bootstrap) GetBootstrapPermissions() []string {
	return getEnvList(bootstrapPermissionsVar, []string{"test"})
}
