package storage

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

//go:generate mockgen -source=backup_store.go -destination=mocks/backup_store_mock.go -package=mocks

// BackupStore guarda os snapshots CSV do livro-caixa
type BackupStore interface {
	// Write grava (ou sobrescreve) o arquivo name e retorna o caminho final
	Write(ctx context.Context, name string, data []byte) (string, error)
	// Latest retorna o nome lexicograficamente maior entre os arquivos com o
	// prefixo e sufixo informados, ou "" quando não há nenhum
	Latest(ctx context.Context, prefix, suffix string) (string, error)
	Read(ctx context.Context, name string) ([]byte, error)
}

// Mirror recebe uma cópia de cada arquivo gravado no BackupStore
type Mirror interface {
	Put(ctx context.Context, name string, data []byte) error
}

type fileBackupStore struct {
	dir string
}

// NewFileBackupStore cria um BackupStore sobre o diretório dir. O diretório é
// criado sob demanda na primeira escrita ou listagem.
func NewFileBackupStore(dir string) BackupStore {
	return &fileBackupStore{dir: dir}
}

func (s *fileBackupStore) Write(_ context.Context, name string, data []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", errors.Wrapf(err, "erro ao criar diretório de backup %s", s.dir)
	}

	target := filepath.Join(s.dir, filepath.Base(name))

	tmp, err := os.CreateTemp(s.dir, ".tmp-"+filepath.Base(name)+"-*")
	if err != nil {
		return "", errors.Wrap(err, "erro ao criar arquivo temporário de backup")
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", errors.Wrapf(err, "erro ao gravar backup %s", target)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", errors.Wrapf(err, "erro ao fechar backup %s", target)
	}

	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return "", errors.Wrapf(err, "erro ao mover backup para %s", target)
	}

	return target, nil
}

func (s *fileBackupStore) Latest(_ context.Context, prefix, suffix string) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", errors.Wrapf(err, "erro ao criar diretório de backup %s", s.dir)
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return "", errors.Wrapf(err, "erro ao listar diretório de backup %s", s.dir)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, prefix) && strings.HasSuffix(name, suffix) {
			names = append(names, name)
		}
	}

	if len(names) == 0 {
		return "", nil
	}

	sort.Strings(names)
	return names[len(names)-1], nil
}

func (s *fileBackupStore) Read(_ context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, filepath.Base(name)))
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao ler backup %s", name)
	}
	return data, nil
}
