package memory

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/m04kA/SMC-CenterBooking/internal/infra/storage/storagetest"
)

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, &storagetest.StoreSuite{
		NewStore: func() storagetest.Store { return NewStore() },
	})
}
