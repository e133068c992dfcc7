package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courtcast-service/internal/domain/entity"
	"courtcast-service/pkg/logger"
)

// recordingLogger captures debug messages for assertions
type recordingLogger struct {
	debugMsgs []string
}

func (l *recordingLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.debugMsgs = append(l.debugMsgs, msg)
}
func (l *recordingLogger) Info(msg string, keysAndValues ...interface{})  {}
func (l *recordingLogger) Warn(msg string, keysAndValues ...interface{})  {}
func (l *recordingLogger) Error(msg string, keysAndValues ...interface{}) {}
func (l *recordingLogger) Fatal(msg string, keysAndValues ...interface{}) {}
func (l *recordingLogger) With(keysAndValues ...interface{}) logger.Logger {
	return l
}

func TestExtract_SlotDetailsBlock(t *testing.T) {
	e := NewContentExtractor(nil)

	body := `<div>Slot Details</div>` +
		`<div>06 Feb '26, 7:00 PM - 8:00 PM</div>` +
		`<div>Venue: Andheri</div>`

	got := e.Extract(entity.PlatformHudle, "Hudle Booking Confirmation", body)

	assert.Equal(t, "06 Feb '26", got.GameDate)
	assert.Equal(t, "7:00 PM - 8:00 PM", got.GameTime)
	assert.Equal(t, "Andheri", got.Location)
	assert.Equal(t, entity.PlatformHudle, got.Platform)
	assert.NotEqual(t, entity.SlotMissing, got.BookingSlot)
}

func TestExtract_TransportHeaderTimestampIgnored(t *testing.T) {
	e := NewContentExtractor(nil)

	body := "Booking Details\n" +
		"Date: Fri, 06 Feb 2026 10:15:00 +0530\n" +
		"06 Feb '26\n" +
		"7:00 PM - 8:00 PM\n"

	got := e.Extract(entity.PlatformPlayo, "Playo booking", body)

	assert.Equal(t, "7:00 PM - 8:00 PM", got.GameTime)
	assert.NotContains(t, got.GameTime, "10:15")
	assert.Equal(t, "06 Feb '26", got.GameDate)
}

func TestExtract_AuditPhraseIgnored(t *testing.T) {
	e := NewContentExtractor(nil)

	body := "Your booking\n" +
		"Booked on 05 Feb '26, 9:12 AM\n" +
		"06 Feb '26, 7:00 PM - 8:00 PM\n"

	got := e.Extract(entity.PlatformHudle, "Hudle Booking Confirmation", body)

	assert.Equal(t, "06 Feb '26", got.GameDate)
	assert.NotContains(t, got.GameTime, "9:12")
}

func TestExtract_TimeOnlyLineInheritsPrecedingDate(t *testing.T) {
	e := NewContentExtractor(nil)

	body := "Slot Details\n" +
		"06 Feb '26\n" +
		"7:00 PM - 8:00 PM\n"

	got := e.Extract(entity.PlatformHudle, "Hudle Booking Confirmation", body)

	assert.Equal(t, "06 Feb '26", got.GameDate)
	assert.Equal(t, "7:00 PM - 8:00 PM", got.GameTime)
}

func TestExtract_BackwardDateSearch(t *testing.T) {
	e := NewContentExtractor(nil)

	body := "06 Feb '26\n" +
		"Your court is ready\n" +
		"7:00 PM - 8:00 PM\n"

	got := e.Extract(entity.PlatformHudle, "Hudle Booking Confirmation", body)

	assert.Equal(t, "06 Feb '26", got.GameDate)
	assert.Equal(t, "7:00 PM - 8:00 PM", got.GameTime)
}

func TestExtract_GlobalScanWithoutAnchor(t *testing.T) {
	e := NewContentExtractor(nil)

	body := "Hi,\n" +
		"See you on 06 Feb '26, 7:00 PM - 8:00 PM\n" +
		"Cheers\n"

	got := e.Extract(entity.PlatformPlayo, "See you there", body)

	assert.Equal(t, "06 Feb '26", got.GameDate)
	assert.Equal(t, "7:00 PM - 8:00 PM", got.GameTime)
}

func TestExtract_NoSlotFallsBackToSentinels(t *testing.T) {
	e := NewContentExtractor(nil)

	got := e.Extract(entity.PlatformPlayo, "Playo booking", "Thanks for playing with us.")

	assert.Equal(t, entity.SlotMissing, got.BookingSlot)
	assert.Equal(t, entity.DateTBD, got.GameDate)
	assert.Equal(t, entity.SlotMissing, got.GameTime)
	assert.Equal(t, entity.LocationUnknown, got.Location)
	assert.Equal(t, entity.SportGeneral, got.Sport)
	assert.Equal(t, entity.ValueNA, got.CustomerName)
	assert.Equal(t, entity.ValueNA, got.PaidAmount)
}

func TestExtract_MissingSlotLogged(t *testing.T) {
	log := &recordingLogger{}
	e := NewContentExtractor(log)

	e.Extract(entity.PlatformPlayo, "Playo booking", "Thanks for playing with us.")
	assert.NotEmpty(t, log.debugMsgs)

	quiet := &recordingLogger{}
	e2 := NewContentExtractor(quiet)
	e2.Extract(entity.PlatformHudle, "Hudle Booking Confirmation",
		"Slot Details\n06 Feb '26, 7:00 PM - 8:00 PM\n")
	assert.Empty(t, quiet.debugMsgs)
}

func TestExtract_SystemPlatformDefaultsToAdminLocation(t *testing.T) {
	e := NewContentExtractor(nil)

	got := e.Extract(entity.PlatformSystem, "Booking confirmed", "Court booked for tomorrow.")

	assert.Equal(t, entity.LocationAdmin, got.Location)
}

func TestExtract_CustomerNameAndAmount(t *testing.T) {
	e := NewContentExtractor(nil)

	body := "Slot Details\n" +
		"06 Feb '26, 7:00 PM - 8:00 PM\n" +
		"Booked by: Rahul Sharma\n" +
		"Amount Paid: Rs. 1,200\n"

	got := e.Extract(entity.PlatformHudle, "Hudle Booking Confirmation", body)

	assert.Equal(t, "Rahul Sharma", got.CustomerName)
	assert.Equal(t, "₹1200", got.PaidAmount)
}

func TestExtract_VenueLikeNameRejected(t *testing.T) {
	e := NewContentExtractor(nil)

	body := "Booked by: Andheri Sports Arena\nAmount Paid: Rs. 900\n"

	got := e.Extract(entity.PlatformHudle, "Hudle Booking Confirmation", body)

	assert.Equal(t, entity.ValueNA, got.CustomerName)
	assert.Equal(t, "₹900", got.PaidAmount)
}

func TestExtract_ImplausibleAmountRejected(t *testing.T) {
	e := NewContentExtractor(nil)

	body := "Slot Details\n06 Feb '26, 7:00 PM - 8:00 PM\nTransaction ID: 984512230041\n"

	got := e.Extract(entity.PlatformHudle, "Hudle Booking Confirmation", body)

	assert.Equal(t, entity.ValueNA, got.PaidAmount)
}

func TestSelectSlot_PrefersDatedFragments(t *testing.T) {
	got := selectSlot([]string{"10:15 AM", "06 Feb '26, 7:00 PM - 8:00 PM"})
	assert.Equal(t, "06 Feb '26, 7:00 PM - 8:00 PM", got)
}

func TestSelectSlot_DeduplicatesFragments(t *testing.T) {
	got := selectSlot([]string{"06 Feb '26, 7:00 PM - 8:00 PM", "06 Feb '26, 7:00 PM - 8:00 PM"})
	assert.Equal(t, "06 Feb '26, 7:00 PM - 8:00 PM", got)
}

func TestSelectSlot_EmptyInput(t *testing.T) {
	assert.Equal(t, entity.SlotMissing, selectSlot(nil))
}

func TestNormalizeBody_StripsMarkupAndEntities(t *testing.T) {
	body := `<table><tr><td>Venue:&nbsp;Andheri</td></tr><tr><td>Rahul&#39;s booking</td></tr></table>`

	lines := NormalizeBody(body)

	require.Len(t, lines, 2)
	assert.Equal(t, "Venue: Andheri", lines[0])
	assert.Equal(t, "Rahul's booking", lines[1])
}

func TestNormalizeBody_PlainTextPassesThrough(t *testing.T) {
	lines := NormalizeBody("first line\n\n  second   line \n")

	require.Len(t, lines, 2)
	assert.Equal(t, "first line", lines[0])
	assert.Equal(t, "second line", lines[1])
}
