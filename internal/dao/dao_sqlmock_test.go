package dao

import (
	"context"
	"errors"
	"testing"

	"github.com/haierkeys/doc-share-service/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	gomysql "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func newMockDao(t *testing.T) (*Dao, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{SkipDefaultTransaction: true, TranslateError: true})
	require.NoError(t, err)
	return New(db, WithLogger(zap.NewNop())), mock
}

func TestStoreFailureIsNotNotFound(t *testing.T) {
	d, mock := newMockDao(t)
	repo := NewDocumentRepository(d)

	mock.ExpectQuery("SELECT \\* FROM `document`").WillReturnError(errors.New("dial tcp: connection refused"))

	_, err := repo.GetActiveByReadCode(context.Background(), "READ0001")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "connection refused")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDuplicateEntryMapsToConflict(t *testing.T) {
	d, mock := newMockDao(t)
	repo := NewReportRepository(d)

	mock.ExpectExec("INSERT INTO `report`").
		WillReturnError(&gomysql.MySQLError{Number: 1062, Message: "Duplicate entry '1-10.0.0.1' for key 'uk_report_document_ip'"})

	err := repo.Create(context.Background(), &domain.Report{DocumentID: 1, IPAddress: "10.0.0.1"})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUntranslatedDriverErrorIsNotConflict(t *testing.T) {
	d, mock := newMockDao(t)
	repo := NewReportRepository(d)

	mock.ExpectExec("INSERT INTO `report`").
		WillReturnError(errors.New("Duplicate entry '1-10.0.0.1' for key 'uk_report_document_ip'"))

	err := repo.Create(context.Background(), &domain.Report{DocumentID: 1, IPAddress: "10.0.0.1"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}
