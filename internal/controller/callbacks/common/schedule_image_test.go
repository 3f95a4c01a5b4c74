package common

import (
	"bytes"
	"testing"
	"time"

	"github.com/glebkhl/zapis_bot/internal/model"
)

func TestGenerateScheduleImage(t *testing.T) {
	start := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)
	name := "Вася"

	slots := []model.Slot{
		{Date: start, Hour: 10, ServiceCode: "standard", Status: model.SlotStatusFree},
		{Date: start, Hour: 14, ServiceCode: "deep", Status: model.SlotStatusBooked, OwnerName: &name},
		{Date: start.AddDate(0, 0, 1), Hour: 10, ServiceCode: "express", Status: model.SlotStatusFree},
	}

	image, err := GenerateScheduleImage(start, 2, []int{10, 14}, slots)
	if err != nil {
		t.Fatalf("generate image: %v", err)
	}

	if len(image) == 0 {
		t.Fatal("image must not be empty")
	}

	// PNG-заголовок
	if !bytes.HasPrefix(image, []byte("\x89PNG\r\n\x1a\n")) {
		t.Fatal("output is not a PNG")
	}
}

func TestGenerateScheduleImage_EmptyGrid(t *testing.T) {
	if _, err := GenerateScheduleImage(time.Now(), 0, nil, nil); err == nil {
		t.Fatal("expected error for empty grid")
	}
}
