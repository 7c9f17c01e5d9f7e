package tui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestCurrentTheme(t *testing.T) {
	theme := CurrentTheme()
	if theme == nil {
		t.Fatal("CurrentTheme() returned nil")
	}
	if !theme.Focused.Title.GetBold() {
		t.Error("expected the board theme with its bold title")
	}
}

func TestBoardTheme(t *testing.T) {
	theme := boardTheme()

	if theme == nil {
		t.Fatal("boardTheme() returned nil")
	}

	t.Run("Focused styles are configured", func(t *testing.T) {
		// Title should be bold
		if !theme.Focused.Title.GetBold() {
			t.Error("Focused.Title should be bold")
		}

		// Base should have rounded border
		if theme.Focused.Base.GetBorderStyle() != lipgloss.RoundedBorder() {
			t.Error("Focused.Base should have rounded border")
		}

		// FocusedButton should be bold with padding
		if !theme.Focused.FocusedButton.GetBold() {
			t.Error("Focused.FocusedButton should be bold")
		}

		// FocusedButton should have horizontal padding
		_, right, _, left := theme.Focused.FocusedButton.GetPadding()
		if left != 1 || right != 1 {
			t.Errorf("Focused.FocusedButton should have horizontal padding of 1, got left=%d right=%d", left, right)
		}
	})

	t.Run("Blurred styles are configured", func(t *testing.T) {
		// BlurredButton should have padding matching FocusedButton
		_, right, _, left := theme.Focused.BlurredButton.GetPadding()
		if left != 1 || right != 1 {
			t.Errorf("Focused.BlurredButton should have horizontal padding of 1, got left=%d right=%d", left, right)
		}

		if !theme.Blurred.Title.GetBold() {
			t.Error("Blurred.Title should be bold")
		}
	})
}
