package services

import (
	"errors"
	"regexp"
	"strings"

	"github.com/terraincognita07/lunara/internal/models"
	"github.com/terraincognita07/lunara/internal/store"
)

var (
	ErrContactNameRequired         = errors.New("emergency contact name is required")
	ErrContactPhoneInvalid         = errors.New("emergency contact phone invalid")
	ErrContactRelationshipRequired = errors.New("emergency contact relationship is required")
	ErrEmergencyContactNotFound    = errors.New("emergency contact not found")
	ErrNoEmergencyContacts         = errors.New("no emergency contacts configured")
)

var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ()\-]{2,24}$`)

type EmergencyContactInput struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
	IsPrimary    bool   `json:"isPrimary"`
}

// EmergencyAlert is what an alert request resolves to. Nothing is sent.
type EmergencyAlert struct {
	Contact models.EmergencyContact `json:"contact"`
	Message string                  `json:"message"`
}

type SafetyService struct {
	records *store.Store
	newID   func() string
}

func NewSafetyService(records *store.Store) *SafetyService {
	return &SafetyService{records: records, newID: newRecordID}
}

func (service *SafetyService) List() []models.EmergencyContact {
	return store.Load(service.records, models.KeyEmergencyContacts, models.DefaultEmergencyContacts())
}

// Add appends a new contact. The primary flag is advisory and other contacts keep theirs.
func (service *SafetyService) Add(input EmergencyContactInput) (models.EmergencyContact, error) {
	contact, err := NormalizeEmergencyContactInput(input)
	if err != nil {
		return models.EmergencyContact{}, err
	}
	contact.ID = service.newID()

	_, err = store.Update(service.records, models.KeyEmergencyContacts, models.DefaultEmergencyContacts(), func(contacts []models.EmergencyContact) []models.EmergencyContact {
		return append(contacts, contact)
	})
	return contact, err
}

func (service *SafetyService) Remove(id string) error {
	found := false
	_, err := store.Update(service.records, models.KeyEmergencyContacts, models.DefaultEmergencyContacts(), func(contacts []models.EmergencyContact) []models.EmergencyContact {
		kept := make([]models.EmergencyContact, 0, len(contacts))
		for _, contact := range contacts {
			if contact.ID == id {
				found = true
				continue
			}
			kept = append(kept, contact)
		}
		return kept
	})
	if !found {
		return ErrEmergencyContactNotFound
	}
	return err
}

// AlertTarget picks the first primary contact, or the first contact when none is primary.
func (service *SafetyService) AlertTarget() (EmergencyAlert, error) {
	contacts := service.List()
	if len(contacts) == 0 {
		return EmergencyAlert{}, ErrNoEmergencyContacts
	}

	target := contacts[0]
	for _, contact := range contacts {
		if contact.IsPrimary {
			target = contact
			break
		}
	}
	return EmergencyAlert{
		Contact: target,
		Message: "Emergency alert prepared for " + target.Name + " (" + target.Phone + ")",
	}, nil
}

func NormalizeEmergencyContactInput(input EmergencyContactInput) (models.EmergencyContact, error) {
	contact := models.EmergencyContact{
		Name:         strings.TrimSpace(input.Name),
		Phone:        strings.TrimSpace(input.Phone),
		Relationship: strings.TrimSpace(input.Relationship),
		IsPrimary:    input.IsPrimary,
	}
	if contact.Name == "" {
		return models.EmergencyContact{}, ErrContactNameRequired
	}
	if !phonePattern.MatchString(contact.Phone) {
		return models.EmergencyContact{}, ErrContactPhoneInvalid
	}
	if contact.Relationship == "" {
		return models.EmergencyContact{}, ErrContactRelationshipRequired
	}
	return contact, nil
}
