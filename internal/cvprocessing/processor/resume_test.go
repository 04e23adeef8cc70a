package processor_test

import (
	"context"
	"testing"

	"github.com/talentflow/talentflow-backend/internal/cvprocessing/domain"
	"github.com/talentflow/talentflow-backend/internal/cvprocessing/processor"
)

func TestResumeProcessor_CanProcess(t *testing.T) {
	p := processor.NewResumeProcessor()

	tests := []struct {
		docType domain.DocumentType
		want    bool
	}{
		{domain.DocumentTypeResume, true},
		{domain.DocumentTypeUnknown, true},
		{domain.DocumentType("invoice"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.docType), func(t *testing.T) {
			if got := p.CanProcess(tt.docType); got != tt.want {
				t.Errorf("CanProcess(%s) = %v, want %v", tt.docType, got, tt.want)
			}
		})
	}
}

func TestResumeProcessor_Process(t *testing.T) {
	p := processor.NewResumeProcessor()

	text := "JANE DOE\nSoftware Engineer at a product company\njane.doe@example.com\n\nSKILLS\nPython, Docker"

	profile, err := p.Process(context.Background(), text, domain.DocumentTypeResume)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.PersonalInfo.FullName != "Jane Doe" {
		t.Errorf("FullName = %q, want Jane Doe", profile.PersonalInfo.FullName)
	}
	if profile.PersonalInfo.Email != "jane.doe@example.com" {
		t.Errorf("Email = %q", profile.PersonalInfo.Email)
	}
}

func TestResumeProcessor_EmptyText(t *testing.T) {
	p := processor.NewResumeProcessor()

	if _, err := p.Process(context.Background(), "   \n\t ", domain.DocumentTypeResume); err == nil {
		t.Fatal("want error for blank text")
	}
}

func TestResumeProcessor_CancelledContext(t *testing.T) {
	p := processor.NewResumeProcessor()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := p.Process(ctx, "some text", domain.DocumentTypeResume); err == nil {
		t.Fatal("want error for cancelled context")
	}
}

func TestRegistry_FindProcessors(t *testing.T) {
	reg := processor.NewRegistry(processor.NewResumeProcessor())

	if got := reg.FindProcessors(domain.DocumentTypeResume); len(got) != 1 {
		t.Errorf("FindProcessors(resume) = %d processors, want 1", len(got))
	}
	if got := reg.FindProcessor(domain.DocumentType("invoice")); got != nil {
		t.Errorf("FindProcessor(invoice) = %v, want nil", got)
	}
}
