package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"image/png"

	"dairy-backend/internal/apperrors"
	"dairy-backend/internal/auth"
	"dairy-backend/internal/models"
	"dairy-backend/internal/repositories"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

const totpIssuer = "DairyDelivery"

type TOTPService struct {
	userRepo *repositories.UserRepository
}

func NewTOTPService(userRepo *repositories.UserRepository) *TOTPService {
	return &TOTPService{userRepo: userRepo}
}

// GenerateSetup creates a new TOTP secret and QR code for a user. The
// secret is stored disabled until the first code verifies.
func (s *TOTPService) GenerateSetup(ctx context.Context, user *models.User) (*models.TOTPSetupResponse, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: user.Email,
		Period:      30,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.SetTOTPSecret(ctx, user.ID, key.Secret()); err != nil {
		return nil, err
	}

	qrImage, err := key.Image(200, 200)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, qrImage); err != nil {
		return nil, err
	}

	return &models.TOTPSetupResponse{
		Secret:      key.Secret(),
		QRCode:      "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()),
		Issuer:      totpIssuer,
		AccountName: user.Email,
	}, nil
}

// VerifyAndEnable verifies the first code from the authenticator app and
// turns 2FA on.
func (s *TOTPService) VerifyAndEnable(ctx context.Context, userID int, code string) error {
	secret, _, err := s.userRepo.GetTOTPSecret(ctx, userID)
	if err != nil {
		return err
	}
	if secret == "" {
		return apperrors.InvalidInputf("2FA setup not initiated")
	}

	if !totp.Validate(code, secret) {
		return apperrors.InvalidInputf("invalid verification code")
	}

	return s.userRepo.EnableTOTP(ctx, userID)
}

// Verify validates a TOTP code during the second login step.
func (s *TOTPService) Verify(ctx context.Context, userID int, code string) error {
	secret, enabled, err := s.userRepo.GetTOTPSecret(ctx, userID)
	if err != nil {
		return err
	}
	if !enabled || secret == "" {
		return apperrors.InvalidInputf("2FA is not enabled")
	}

	if !totp.Validate(code, secret) {
		return apperrors.InvalidInputf("invalid verification code")
	}
	return nil
}

// Disable turns 2FA off after re-checking the password and a current code.
func (s *TOTPService) Disable(ctx context.Context, userID int, password, code string) error {
	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		return err
	}
	if !auth.VerifyPassword(user.PasswordHash, password) {
		return apperrors.InvalidInputf("invalid password")
	}

	if err := s.Verify(ctx, userID, code); err != nil {
		return err
	}
	return s.userRepo.DisableTOTP(ctx, userID)
}
