package service

import (
	"context"
	"errors"
	"testing"

	"focusportal/internal/domain"
	"focusportal/internal/domain/models"
	"focusportal/internal/domain/services"
	"focusportal/internal/filekind"
)

func newFileFixture(t *testing.T) (services.FileService, *fakeFileRepo, *fakeFolderRepo, *fakeBlobStore) {
	t.Helper()
	kinds, err := filekind.NewRegistry()
	if err != nil {
		t.Fatalf("failed to load kind registry: %v", err)
	}
	fileRepo := newFakeFileRepo()
	folderRepo := newFakeFolderRepo()
	blobs := &fakeBlobStore{}
	svc := NewFileService(fileRepo, folderRepo, kinds, blobs, testLogger())
	return svc, fileRepo, folderRepo, blobs
}

func TestCreateFile_DerivesKindFromExtension(t *testing.T) {
	svc, _, _, _ := newFileFixture(t)

	tests := []struct {
		fileName     string
		wantKind     string
		wantEditable bool
	}{
		{fileName: "calc.pdf", wantKind: "pdf", wantEditable: false},
		{fileName: "essay.docx", wantKind: "docx", wantEditable: true},
		{fileName: "notes.md", wantKind: "md", wantEditable: true},
		{fileName: "budget.xlsx", wantKind: "xlsx", wantEditable: false},
		{fileName: "photo.png", wantKind: "image", wantEditable: false},
		{fileName: "readme.txt", wantKind: "txt", wantEditable: false},
	}

	for _, tt := range tests {
		t.Run(tt.fileName, func(t *testing.T) {
			file, err := svc.CreateFile(context.Background(), &services.CreateFileRequest{
				OwnerID:  testOwner,
				FileName: tt.fileName,
				Source:   models.FileSourceUpload,
			})
			if err != nil {
				t.Fatalf("CreateFile failed: %v", err)
			}
			if file.Kind != tt.wantKind {
				t.Errorf("expected kind %q, got %q", tt.wantKind, file.Kind)
			}
			if file.Editable != tt.wantEditable {
				t.Errorf("expected editable=%v, got %v", tt.wantEditable, file.Editable)
			}
		})
	}
}

func TestCreateFile_UnknownExtension(t *testing.T) {
	svc, _, _, _ := newFileFixture(t)

	_, err := svc.CreateFile(context.Background(), &services.CreateFileRequest{
		OwnerID:  testOwner,
		FileName: "virus.exe",
		Source:   models.FileSourceUpload,
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("unsupported extension must be rejected, got %v", err)
	}
}

func TestCreateFile_UnknownSource(t *testing.T) {
	svc, _, _, _ := newFileFixture(t)

	_, err := svc.CreateFile(context.Background(), &services.CreateFileRequest{
		OwnerID:  testOwner,
		FileName: "calc.pdf",
		Source:   models.FileSource("imported"),
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("unknown source token must be rejected, got %v", err)
	}
}

func TestCreateFile_TargetFolderMustExist(t *testing.T) {
	svc, _, _, _ := newFileFixture(t)

	missing := "no-such-folder"
	_, err := svc.CreateFile(context.Background(), &services.CreateFileRequest{
		OwnerID:  testOwner,
		FileName: "calc.pdf",
		Source:   models.FileSourceUpload,
		FolderID: &missing,
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestPreserveExtension(t *testing.T) {
	tests := []struct {
		name    string
		oldName string
		newName string
		want    string
	}{
		{name: "same extension kept", oldName: "notes.pdf", newName: "report.pdf", want: "report.pdf"},
		{name: "foreign extension appended", oldName: "notes.pdf", newName: "report.txt", want: "report.txt.pdf"},
		{name: "bare name gets extension", oldName: "notes.pdf", newName: "report", want: "report.pdf"},
		{name: "case insensitive match", oldName: "notes.pdf", newName: "report.PDF", want: "report.PDF"},
		{name: "extensionless original", oldName: "notes", newName: "report.txt", want: "report.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := preserveExtension(tt.oldName, tt.newName); got != tt.want {
				t.Errorf("preserveExtension(%q, %q) = %q, want %q", tt.oldName, tt.newName, got, tt.want)
			}
		})
	}
}

func TestUpdateFile_RenameKeepsExtension(t *testing.T) {
	svc, _, _, _ := newFileFixture(t)

	file, err := svc.CreateFile(context.Background(), &services.CreateFileRequest{
		OwnerID:  testOwner,
		FileName: "calc.pdf",
		Source:   models.FileSourceUpload,
	})
	if err != nil {
		t.Fatalf("CreateFile failed: %v", err)
	}

	newName := "linear algebra"
	updated, err := svc.UpdateFile(context.Background(), testOwner, file.ID, &services.UpdateFileRequest{
		FileName: &newName,
	})
	if err != nil {
		t.Fatalf("UpdateFile failed: %v", err)
	}
	if updated.FileName != "linear algebra.pdf" {
		t.Errorf("expected %q, got %q", "linear algebra.pdf", updated.FileName)
	}
	if updated.Kind != "pdf" {
		t.Errorf("kind must not change on rename, got %q", updated.Kind)
	}
}

func TestUpdateFile_MoveToFolderAndBack(t *testing.T) {
	svc, _, folderRepo, _ := newFileFixture(t)

	folderRepo.folders["folder-1"] = &models.Folder{ID: "folder-1", OwnerID: testOwner, Name: "Math"}

	file, err := svc.CreateFile(context.Background(), &services.CreateFileRequest{
		OwnerID:  testOwner,
		FileName: "calc.pdf",
		Source:   models.FileSourceUpload,
	})
	if err != nil {
		t.Fatalf("CreateFile failed: %v", err)
	}

	target := "folder-1"
	moved, err := svc.UpdateFile(context.Background(), testOwner, file.ID, &services.UpdateFileRequest{
		MoveFolder: true,
		FolderID:   &target,
	})
	if err != nil {
		t.Fatalf("move failed: %v", err)
	}
	if moved.FolderID == nil || *moved.FolderID != target {
		t.Errorf("expected folder %s, got %v", target, moved.FolderID)
	}

	back, err := svc.UpdateFile(context.Background(), testOwner, file.ID, &services.UpdateFileRequest{
		MoveFolder: true,
		FolderID:   nil,
	})
	if err != nil {
		t.Fatalf("move to root failed: %v", err)
	}
	if back.FolderID != nil {
		t.Errorf("expected nil folder after move to root, got %v", *back.FolderID)
	}
}

func TestUpdateFileContent_EditableOnly(t *testing.T) {
	svc, _, _, _ := newFileFixture(t)

	editable, err := svc.CreateFile(context.Background(), &services.CreateFileRequest{
		OwnerID:  testOwner,
		FileName: "notes.md",
		Source:   models.FileSourceCreated,
	})
	if err != nil {
		t.Fatalf("CreateFile failed: %v", err)
	}

	updated, err := svc.UpdateFileContent(context.Background(), testOwner, editable.ID, "/blobs/notes-v2.md", 2048)
	if err != nil {
		t.Fatalf("UpdateFileContent failed: %v", err)
	}
	if updated.Location != "/blobs/notes-v2.md" || updated.Size != 2048 {
		t.Errorf("content location not updated: %+v", updated)
	}

	locked, err := svc.CreateFile(context.Background(), &services.CreateFileRequest{
		OwnerID:  testOwner,
		FileName: "calc.pdf",
		Source:   models.FileSourceUpload,
	})
	if err != nil {
		t.Fatalf("CreateFile failed: %v", err)
	}

	_, err = svc.UpdateFileContent(context.Background(), testOwner, locked.ID, "/blobs/x", 1)
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("writing a non-editable file must fail validation, got %v", err)
	}
}

func TestUploadFile(t *testing.T) {
	svc, fileRepo, _, blobs := newFileFixture(t)

	file, err := svc.UploadFile(context.Background(), &services.UploadFileRequest{
		OwnerID:   testOwner,
		FileName:  "calc.pdf",
		LocalPath: "/tmp/upload-abc",
		Size:      4096,
	})
	if err != nil {
		t.Fatalf("UploadFile failed: %v", err)
	}
	if file.Source != models.FileSourceUpload {
		t.Errorf("uploads must be marked as such, got %q", file.Source)
	}
	if file.RemoteID == nil || *file.RemoteID != blobs.stored[0] {
		t.Errorf("file must reference the stored blob, got %v", file.RemoteID)
	}
	if file.Location == "" || file.Size != 4096 {
		t.Errorf("location/size not recorded: %+v", file)
	}
	if len(fileRepo.files) != 1 {
		t.Errorf("expected one registered file, got %d", len(fileRepo.files))
	}
}

func TestUploadFile_ReleasesBlobOnBadName(t *testing.T) {
	svc, fileRepo, _, blobs := newFileFixture(t)

	_, err := svc.UploadFile(context.Background(), &services.UploadFileRequest{
		OwnerID:   testOwner,
		FileName:  "virus.exe",
		LocalPath: "/tmp/upload-abc",
		Size:      1,
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(fileRepo.files) != 0 {
		t.Error("no file should be registered")
	}
	if len(blobs.released) != 1 {
		t.Errorf("the orphaned blob must be released, got %v", blobs.released)
	}
}

func TestDeleteFile_ReleasesBlob(t *testing.T) {
	svc, fileRepo, _, blobs := newFileFixture(t)

	remoteID := "blob-42"
	file, err := svc.CreateFile(context.Background(), &services.CreateFileRequest{
		OwnerID:  testOwner,
		FileName: "calc.pdf",
		Source:   models.FileSourceUpload,
		RemoteID: &remoteID,
	})
	if err != nil {
		t.Fatalf("CreateFile failed: %v", err)
	}

	if err := svc.DeleteFile(context.Background(), testOwner, file.ID); err != nil {
		t.Fatalf("DeleteFile failed: %v", err)
	}
	if len(fileRepo.files) != 0 {
		t.Error("file document should be gone")
	}
	if len(blobs.released) != 1 || blobs.released[0] != remoteID {
		t.Errorf("expected blob %s released, got %v", remoteID, blobs.released)
	}
}

func TestDeleteFile_OtherOwnerIsNotFound(t *testing.T) {
	svc, fileRepo, _, _ := newFileFixture(t)

	fileRepo.files["f1"] = &models.File{ID: "f1", OwnerID: "someone-else", FileName: "x.pdf"}

	err := svc.DeleteFile(context.Background(), testOwner, "f1")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("foreign file must look like not found, got %v", err)
	}
}
