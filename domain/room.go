package domain

// Room is a fixed access point participants use to join a live session.
// Without a label file anyone holding the room URL may join.
type Room struct {
	Name                 string `yaml:"name" json:"name" validate:"required,identifier"`
	DisplayName          string `yaml:"display_name" json:"display_name" validate:"required"`
	ParticipantLabelFile string `yaml:"participant_label_file,omitempty" json:"participant_label_file,omitempty"`
	UseSecureURLs        bool   `yaml:"use_secure_urls,omitempty" json:"use_secure_urls,omitempty"`
}

func (r Room) HasParticipantLabels() bool {
	return r.ParticipantLabelFile != ""
}
