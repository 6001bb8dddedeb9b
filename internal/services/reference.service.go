package services

import (
	"crypto/rand"
	"fmt"

	"masshouse/internal/models"

	logger "github.com/Bparsons0904/goLogger"
)

const (
	// ReferenceSuffixLength gives 36^6 combinations per kind, so collisions
	// are vanishingly rare; the unique index catches the rest.
	ReferenceSuffixLength = 6

	// MaxReferenceAttempts bounds the regenerate-and-retry loop on a
	// duplicate-key insert before the submission fails.
	MaxReferenceAttempts = 3

	referenceAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// ReferenceService mints human-readable reference numbers such as
// MH-ISS-7K2Q9X. Uniqueness is enforced by the database unique index, not
// here; callers retry with a fresh reference on a duplicate-key error.
type ReferenceService struct {
	log logger.Logger
}

func NewReferenceService() *ReferenceService {
	return &ReferenceService{
		log: logger.New("referenceService"),
	}
}

func (s *ReferenceService) Generate(kind models.RequestKind) (string, error) {
	log := s.log.Function("Generate")

	// 252 is the largest multiple of the alphabet size that fits in a byte;
	// anything above it is rejected so every character is equally likely.
	const limit = byte(252)

	suffix := make([]byte, 0, ReferenceSuffixLength)
	buf := make([]byte, ReferenceSuffixLength)
	for len(suffix) < ReferenceSuffixLength {
		if _, err := rand.Read(buf); err != nil {
			return "", log.Err("failed to read random bytes", err)
		}
		for _, b := range buf {
			if b >= limit {
				continue
			}
			suffix = append(suffix, referenceAlphabet[int(b)%len(referenceAlphabet)])
			if len(suffix) == ReferenceSuffixLength {
				break
			}
		}
	}

	return fmt.Sprintf("%s-%s", kind.ReferencePrefix(), string(suffix)), nil
}
