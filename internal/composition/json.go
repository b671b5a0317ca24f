package composition

import "encoding/json"

// Each variant marshals with a "type" discriminator so a layer list can be
// inspected without knowing the Go types.

func (l VideoLayer) MarshalJSON() ([]byte, error) {
	type plain VideoLayer
	return json.Marshal(struct {
		Type Kind `json:"type"`
		plain
	}{KindVideo, plain(l)})
}

func (l AudioLayer) MarshalJSON() ([]byte, error) {
	type plain AudioLayer
	return json.Marshal(struct {
		Type Kind `json:"type"`
		plain
	}{KindAudio, plain(l)})
}

func (l ImageLayer) MarshalJSON() ([]byte, error) {
	type plain ImageLayer
	return json.Marshal(struct {
		Type Kind `json:"type"`
		plain
	}{KindImage, plain(l)})
}

func (l TextLayer) MarshalJSON() ([]byte, error) {
	type plain TextLayer
	return json.Marshal(struct {
		Type Kind `json:"type"`
		plain
	}{KindText, plain(l)})
}

func (l FilterLayer) MarshalJSON() ([]byte, error) {
	type plain FilterLayer
	return json.Marshal(struct {
		Type Kind `json:"type"`
		plain
	}{KindFilter, plain(l)})
}

func (l WatermarkLayer) MarshalJSON() ([]byte, error) {
	type plain WatermarkLayer
	return json.Marshal(struct {
		Type Kind `json:"type"`
		plain
	}{KindWatermark, plain(l)})
}
