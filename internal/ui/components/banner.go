// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"errors"

	"github.com/morganforge/banktui/internal/api"
	"github.com/morganforge/banktui/internal/ui/styles"
)

// Banner renders inline feedback above a page: errors in rose, retryable
// network trouble in amber with a retry hint, plain notices in cyan.
type Banner struct {
	theme *styles.Theme

	message   string
	kind      bannerKind
	retryable bool
}

type bannerKind int

const (
	bannerNone bannerKind = iota
	bannerInfo
	bannerWarning
	bannerError
)

// NewBanner creates an empty banner.
func NewBanner(theme *styles.Theme) Banner {
	return Banner{theme: theme}
}

// SetError classifies err and picks the right presentation: a transport
// failure renders as a warning with a retry hint, anything else as an
// error with the gateway's message.
func (b *Banner) SetError(err error) {
	if err == nil {
		b.Clear()
		return
	}
	if api.IsRetryable(err) {
		b.kind = bannerWarning
		b.retryable = true
		b.message = "Cannot reach the gateway."
		return
	}

	b.kind = bannerError
	b.retryable = false
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		b.message = apiErr.Message
		return
	}
	b.message = err.Error()
}

// SetInfo shows a plain notice.
func (b *Banner) SetInfo(message string) {
	b.kind = bannerInfo
	b.retryable = false
	b.message = message
}

// Clear removes the banner.
func (b *Banner) Clear() {
	b.kind = bannerNone
	b.message = ""
	b.retryable = false
}

// IsRetryable reports whether the banner is showing a retryable failure.
func (b Banner) IsRetryable() bool {
	return b.retryable
}

// HasMessage reports whether anything would render.
func (b Banner) HasMessage() bool {
	return b.kind != bannerNone
}

// View renders the banner, or nothing when clear.
func (b Banner) View() string {
	switch b.kind {
	case bannerError:
		return b.theme.ErrorBox.Render(styles.StatusIndicators.Error + " " + b.message)
	case bannerWarning:
		return b.theme.WarningBox.Render(styles.StatusIndicators.Warning + " " + b.message)
	case bannerInfo:
		return b.theme.InfoBox.Render(styles.StatusIndicators.Info + " " + b.message)
	default:
		return ""
	}
}
