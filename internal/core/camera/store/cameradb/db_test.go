package cameradb

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gowvp/hawk/internal/core/camera"
	"github.com/ixugo/goddd/pkg/orm"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func generateMockDB() (*gorm.DB, sqlmock.Sqlmock, error) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		return nil, nil, err
	}
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	if err != nil {
		return nil, nil, err
	}
	return db, mock, nil
}

func TestCameraGet(t *testing.T) {
	db, mock, err := generateMockDB()
	if err != nil {
		t.Fatal(err)
	}
	cameraDB := NewDB(db)

	mock.ExpectQuery(`SELECT \* FROM "cameras" WHERE id=\$1 (.+) LIMIT \$2`).
		WithArgs("cam-1", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "instance", "frigate_name"}).
			AddRow("cam-1", "Front Door", "a", "front_door"))

	var out camera.Camera
	if err := cameraDB.Camera().Get(context.Background(), &out, orm.Where("id=?", "cam-1")); err != nil {
		t.Fatal(err)
	}
	if out.Instance != "a" || out.FrigateName != "front_door" {
		t.Fatalf("unexpected camera %+v", out)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal("ExpectationsWereMet err:", err)
	}
}

func TestCameraAdd(t *testing.T) {
	db, mock, err := generateMockDB()
	if err != nil {
		t.Fatal(err)
	}
	cameraDB := NewDB(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "cameras"`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	cam := camera.Camera{ID: "cam-1", Name: "Front Door", Instance: "a", FrigateName: "front_door", Enabled: true}
	if err := cameraDB.Camera().Add(context.Background(), &cam); err != nil {
		t.Fatal(err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal("ExpectationsWereMet err:", err)
	}
}
