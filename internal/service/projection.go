package service

import (
	"github.com/haierkeys/doc-share-service/internal/domain"
	"github.com/haierkeys/doc-share-service/internal/dto"
	"github.com/haierkeys/doc-share-service/pkg/timex"
)

// toDocumentDTO 可读投影
func toDocumentDTO(doc *domain.Document) *dto.DocumentDTO {
	tags := doc.Tags
	if tags == nil {
		tags = []string{}
	}
	return &dto.DocumentDTO{
		ReadCode: doc.ReadCode,
		Title:    doc.Title,
		Content:  doc.Content,
		Tags:     tags,
		Type:     string(doc.Type),
		Syntax:   doc.Syntax,
		Privacy:  string(doc.Privacy),
		Views:    doc.Views,
		ExpiryStatus: dto.ExpiryStatusDTO{
			IsExpiring:     doc.ExpiryStatus.IsExpiring,
			ExpirationDate: timex.Time(doc.ExpiryStatus.ExpirationDate),
		},
		CreatedAt: timex.Time(doc.CreatedAt),
	}
}

// toListItemDTO 列表投影
func toListItemDTO(doc *domain.Document) *dto.DocumentListItemDTO {
	tags := doc.Tags
	if tags == nil {
		tags = []string{}
	}
	return &dto.DocumentListItemDTO{
		ReadCode:  doc.ReadCode,
		Title:     doc.Title,
		Tags:      tags,
		Type:      string(doc.Type),
		Views:     doc.Views,
		CreatedAt: timex.Time(doc.CreatedAt),
	}
}

// toEditDTO 编辑投影
func toEditDTO(doc *domain.Document) *dto.DocumentEditDTO {
	return &dto.DocumentEditDTO{
		DocumentDTO:         *toDocumentDTO(doc),
		ID:                  doc.ID,
		UpdateCode:          doc.UpdateCode,
		IsPasswordProtected: doc.PasswordStatus.IsPasswordProtected,
		IsEncrypted:         doc.IsEncrypted,
		UpdatedAt:           timex.Time(doc.UpdatedAt),
	}
}

// patchFromRequest 把请求中出现的字段转换为补丁
func patchFromRequest(params *dto.DocumentUpdateRequest) domain.DocumentPatch {
	patch := domain.DocumentPatch{
		Title:   domain.FromPtr(params.Title),
		Content: domain.FromPtr(params.Content),
		Tags:    domain.FromPtr(params.Tags),
		Syntax:  domain.FromPtr(params.Syntax),
	}
	if params.Type != nil {
		patch.Type = domain.Some(domain.DocumentType(*params.Type))
	}
	if params.Privacy != nil {
		patch.Privacy = domain.Some(domain.Privacy(*params.Privacy))
	}
	if ps := params.PasswordStatus; ps != nil {
		patch.PasswordStatus = domain.Some(domain.PasswordChange{
			IsPasswordProtected: ps.IsPasswordProtected,
			Password:            ps.Password,
		})
	}
	if es := params.ExpiryStatus; es != nil {
		change := domain.ExpiryChange{IsExpiring: es.IsExpiring}
		if es.ExpirationDate != nil {
			t := es.ExpirationDate.Time()
			change.ExpirationDate = &t
		}
		patch.ExpiryStatus = domain.Some(change)
	}
	return patch
}
