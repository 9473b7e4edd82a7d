package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config configura o espelho S3 (AWS ou compatível, como MinIO)
type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string // opcional, endpoint customizado
	Prefix    string // opcional, prefixo das chaves
	PathStyle bool
}

// S3Mirror copia cada arquivo de backup para um bucket S3
type S3Mirror struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewS3Mirror cria o espelho usando a cadeia padrão de credenciais da AWS.
// optFns permite ajustar o cliente (endpoint, transporte HTTP, credenciais).
func NewS3Mirror(ctx context.Context, cfg S3Config, optFns ...func(*s3.Options)) (*S3Mirror, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket required")
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}

	opts := make([]func(*s3.Options), 0, len(optFns)+1)
	opts = append(opts, func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	opts = append(opts, optFns...)

	return &S3Mirror{
		client: s3.NewFromConfig(awsCfg, opts...),
		bucket: cfg.Bucket,
		prefix: strings.Trim(cfg.Prefix, "/"),
	}, nil
}

func (m *S3Mirror) Put(ctx context.Context, name string, data []byte) error {
	key := m.Key(name)

	_, err := m.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(m.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("text/csv"),
	})
	if err != nil {
		return fmt.Errorf("erro ao espelhar backup %s no bucket %s: %w", key, m.bucket, err)
	}

	return nil
}

// Key retorna a chave do objeto para o arquivo name
func (m *S3Mirror) Key(name string) string {
	if m.prefix == "" {
		return path.Base(name)
	}
	return path.Join(m.prefix, path.Base(name))
}
