package jobs

import (
	"testing"

	"masshouse/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestOpenRequestsDigestJobMetadata(t *testing.T) {
	job := &OpenRequestsDigestJob{schedule: services.Daily}

	assert.Equal(t, "OpenRequestsDigest", job.Name())
	assert.Equal(t, services.Daily, job.Schedule())
}
