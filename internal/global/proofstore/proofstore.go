package proofstore

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	appconfig "idea-incubation-system/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ProofStore 凭证对象存储，生成预签名 URL 供前端直传
// 用于报销凭证、路演材料等文件，后端只保存最终访问 URL
type ProofStore struct {
	Endpoint     string
	BaseURL      string
	Bucket       string
	Region       string
	AccessKey    string
	SecretKey    string
	Prefix       string
	UsePathStyle bool

	s3Client *s3.Client
}

// New 从全局配置构造 ProofStore，kind 作为对象 key 的子目录（如 expense-proof、presentation）
func New(kind string) *ProofStore {
	cfg := appconfig.Get().S3
	prefix := path.Join(strings.Trim(cfg.Prefix, "/"), kind)
	return &ProofStore{
		Endpoint:     cfg.Endpoint,
		BaseURL:      cfg.BaseURL,
		Bucket:       cfg.Bucket,
		Region:       cfg.Region,
		AccessKey:    cfg.AccessKey,
		SecretKey:    cfg.SecretAccessKey,
		Prefix:       prefix,
		UsePathStyle: cfg.UsePathStyle,
	}
}

// InitS3 初始化 S3 客户端
func (ps *ProofStore) InitS3(ctx context.Context) error {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(ps.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(ps.AccessKey, ps.SecretKey, ""),
		),
	)
	if err != nil {
		return fmt.Errorf("加载 S3 配置失败: %w", err)
	}

	ps.s3Client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if ps.Endpoint != "" {
			o.BaseEndpoint = aws.String(ps.Endpoint)
		}
		o.UsePathStyle = ps.UsePathStyle
	})
	return nil
}

// PresignedUploadRequest 预签名上传请求参数
type PresignedUploadRequest struct {
	Filename    string // 原始文件名
	ContentType string // 文件 MIME 类型
	ExpiresIn   int64  // 过期时间（秒），默认 15 分钟
}

// PresignedUploadResponse 预签名上传响应
type PresignedUploadResponse struct {
	UploadURL string            `json:"upload_url"` // 预签名上传 URL
	FileKey   string            `json:"file_key"`   // 对象存储中的文件 key
	FileURL   string            `json:"file_url"`   // 上传成功后的访问 URL
	ExpiresAt time.Time         `json:"expires_at"` // 过期时间
	Method    string            `json:"method"`     // HTTP 方法（通常是 PUT）
	Headers   map[string]string `json:"headers"`    // 上传时需要携带的 Headers
}

// GeneratePresignedUploadURL 生成预签名上传 URL，前端直传 S3 无需后端中转
func (ps *ProofStore) GeneratePresignedUploadURL(ctx context.Context, req PresignedUploadRequest) (*PresignedUploadResponse, error) {
	if ps.s3Client == nil {
		if err := ps.InitS3(ctx); err != nil {
			return nil, fmt.Errorf("初始化 S3 客户端失败: %w", err)
		}
	}

	if ps.Bucket == "" {
		return nil, fmt.Errorf("S3 bucket 未配置")
	}
	if req.Filename == "" {
		return nil, fmt.Errorf("文件名不能为空")
	}

	if req.ExpiresIn <= 0 {
		req.ExpiresIn = 900 // 15 分钟
	}

	// 生成唯一的文件名（时间戳 + 原始扩展名）
	ext := strings.ToLower(path.Ext(req.Filename))
	uniqueFilename := fmt.Sprintf("%d%s", time.Now().UnixNano(), ext)

	key := path.Join(strings.Trim(ps.Prefix, "/"), uniqueFilename)
	key = strings.TrimLeft(key, "/")

	contentType := req.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	presignClient := s3.NewPresignClient(ps.s3Client)

	presignedReq, err := presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(ps.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = time.Duration(req.ExpiresIn) * time.Second
	})
	if err != nil {
		return nil, fmt.Errorf("生成预签名 URL 失败: %w", err)
	}

	base := strings.TrimRight(ps.BaseURL, "/")
	if base == "" {
		base = strings.TrimRight(ps.Endpoint, "/")
	}

	var fileURL string
	if ps.UsePathStyle {
		fileURL = base + "/" + ps.Bucket + "/" + key
	} else {
		fileURL = base + "/" + key
	}

	response := &PresignedUploadResponse{
		UploadURL: presignedReq.URL,
		FileKey:   key,
		FileURL:   fileURL,
		ExpiresAt: time.Now().Add(time.Duration(req.ExpiresIn) * time.Second),
		Method:    presignedReq.Method,
		Headers: map[string]string{
			"Content-Type": contentType,
		},
	}
	for k, v := range presignedReq.SignedHeader {
		if len(v) > 0 {
			response.Headers[k] = v[0]
		}
	}

	return response, nil
}

// GeneratePresignedDownloadURL 生成预签名下载 URL，用于访问私有对象
func (ps *ProofStore) GeneratePresignedDownloadURL(ctx context.Context, key string, expiresIn int64) (string, error) {
	if ps.s3Client == nil {
		if err := ps.InitS3(ctx); err != nil {
			return "", fmt.Errorf("初始化 S3 客户端失败: %w", err)
		}
	}

	if expiresIn <= 0 {
		expiresIn = 3600
	}

	presignClient := s3.NewPresignClient(ps.s3Client)
	presignedReq, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(ps.Bucket),
		Key:    aws.String(key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = time.Duration(expiresIn) * time.Second
	})
	if err != nil {
		return "", fmt.Errorf("生成预签名下载 URL 失败: %w", err)
	}
	return presignedReq.URL, nil
}
