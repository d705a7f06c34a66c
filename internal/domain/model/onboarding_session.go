package model

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/apperrors"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/valueobject"
)

const (
	LanguageEnglish = "en"
	LanguageHindi   = "hi"
)

// OnboardingSession is the request-scoped state threaded through the
// onboarding stages. Stages receive a copy and return an updated copy;
// Messages is copied on every append so earlier copies never change.
type OnboardingSession struct {
	ID               uuid.UUID
	PhoneNumber      valueobject.PhoneNumber
	UserName         string
	Language         string
	Messages         []string
	SimSwapChecked   bool
	NumberVerified   bool
	DeviceChecked    bool
	LocationVerified bool
	RiskScore        int
	Status           valueobject.OnboardingStatus
	NextStep         string
	StartedAt        time.Time
}

// NewOnboardingSession validates the request fields and returns a pending session.
func NewOnboardingSession(phoneNumber, userName, language string, now time.Time) (OnboardingSession, error) {
	phone, err := valueobject.NewPhoneNumber(phoneNumber)
	if err != nil {
		return OnboardingSession{}, apperrors.NewValidationError("phone_number", err.Error())
	}

	lang := strings.ToLower(strings.TrimSpace(language))
	if lang == "" {
		lang = LanguageEnglish
	}

	return OnboardingSession{
		ID:          uuid.New(),
		PhoneNumber: phone,
		UserName:    strings.TrimSpace(userName),
		Language:    lang,
		Messages:    []string{},
		Status:      valueobject.OnboardingPending,
		StartedAt:   now.UTC(),
	}, nil
}

// DisplayName is the name used when addressing the user.
func (s OnboardingSession) DisplayName() string {
	if s.UserName == "" {
		return "User"
	}
	return s.UserName
}

// Say returns a copy of the session with msg appended to the transcript and
// nextStep set.
func (s OnboardingSession) Say(msg, nextStep string) OnboardingSession {
	messages := make([]string, len(s.Messages), len(s.Messages)+1)
	copy(messages, s.Messages)
	s.Messages = append(messages, msg)
	s.NextStep = nextStep
	return s
}
