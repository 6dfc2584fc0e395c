package service

import (
	"context"

	"github.com/haierkeys/doc-share-service/internal/domain"
	"github.com/haierkeys/doc-share-service/internal/dto"
	"github.com/haierkeys/doc-share-service/pkg/code"
	"github.com/haierkeys/doc-share-service/pkg/logger"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ReportService defines the abuse report service interface
// ReportService 举报业务服务接口
type ReportService interface {
	// Report 举报文档，同一地址对同一文档只能举报一次
	Report(ctx context.Context, params *dto.ReportCreateRequest, ip string) error
	// ListReportedByIP 获取该地址举报过的文档 ID
	ListReportedByIP(ctx context.Context, ip string) (*dto.ReportedDocumentsDTO, error)
}

type reportService struct {
	docRepo domain.DocumentRepository
	repo    domain.ReportRepository
	logger  *zap.Logger
}

// NewReportService 创建 ReportService 实例
func NewReportService(docRepo domain.DocumentRepository, repo domain.ReportRepository, logger *zap.Logger) ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &reportService{docRepo: docRepo, repo: repo, logger: logger}
}

func (s *reportService) Report(ctx context.Context, params *dto.ReportCreateRequest, ip string) error {
	lg := s.logger.With(
		zap.String(logger.FieldTraceID, logger.TraceID(ctx)),
		zap.String(logger.FieldReadCode, params.ReadCode),
		zap.String(logger.FieldIP, ip))

	doc, err := s.docRepo.GetActiveByReadCode(ctx, params.ReadCode)
	if err != nil {
		if !isNotFound(err) {
			lg.Error("report document lookup failed", zap.Error(err))
		}
		return toCode(err)
	}

	// the duplicate check is best effort, the unique index is the real guard
	exists, err := s.repo.Exists(ctx, doc.ID, ip)
	if err != nil {
		lg.Warn("report duplicate check failed", zap.Error(err))
	} else if exists {
		return code.ErrorAlreadyReported
	}

	err = s.repo.Create(ctx, &domain.Report{
		DocumentID: doc.ID,
		Reason:     params.Reason,
		IPAddress:  ip,
	})
	if errors.Is(err, domain.ErrConflict) {
		return code.ErrorAlreadyReported
	}
	if err != nil {
		lg.Error("report write failed", zap.Error(err))
		return toCode(err)
	}

	lg.Info("document reported", zap.Int64(logger.FieldDocumentID, doc.ID))
	return nil
}

func (s *reportService) ListReportedByIP(ctx context.Context, ip string) (*dto.ReportedDocumentsDTO, error) {
	ids, err := s.repo.ListDocumentIDsByIP(ctx, ip)
	if err != nil {
		s.logger.Error("reported documents lookup failed",
			zap.String(logger.FieldTraceID, logger.TraceID(ctx)),
			zap.String(logger.FieldIP, ip),
			zap.Error(err))
		return nil, toCode(err)
	}
	if ids == nil {
		ids = []int64{}
	}
	return &dto.ReportedDocumentsDTO{DocumentIDs: ids}, nil
}
