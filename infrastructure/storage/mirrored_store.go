package storage

import (
	"context"

	"github.com/sirupsen/logrus"
)

type mirroredBackupStore struct {
	BackupStore
	mirror Mirror
}

// NewMirroredBackupStore devolve um BackupStore que, após cada escrita local
// bem-sucedida, envia uma cópia para o mirror. Falhas no mirror são apenas
// registradas em log; o backup local continua valendo.
func NewMirroredBackupStore(store BackupStore, mirror Mirror) BackupStore {
	if mirror == nil {
		return store
	}
	return &mirroredBackupStore{BackupStore: store, mirror: mirror}
}

func (s *mirroredBackupStore) Write(ctx context.Context, name string, data []byte) (string, error) {
	path, err := s.BackupStore.Write(ctx, name, data)
	if err != nil {
		return "", err
	}

	if err := s.mirror.Put(ctx, name, data); err != nil {
		logrus.WithError(err).WithField("file", name).Warn("Falha ao espelhar backup, mantendo apenas a cópia local")
	}

	return path, nil
}
