// Package mock is used to generate mock files for testing.
package mock

//go:generate mockgen -source ../credentials/credentials_iface.go -destination mock_credentials/mock_credentials_iface.go
//go:generate mockgen -source ../verification/verification_iface.go -destination mock_verification/mock_verification_iface.go
//go:generate mockgen -source ../auth_iface.go -destination mock_session/mock_auth_iface.go
