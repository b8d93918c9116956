package service

import (
	"context"

	"credipet/internal/badge/models"
	eventmodels "credipet/internal/events/models"
	id "credipet/pkg/domain"
	dErrors "credipet/pkg/domain-errors"
)

func (s *ServiceSuite) TestSetBaseURI() {
	s.mint(alice)

	err := s.service.SetBaseURI(as(alice), "https://evil.example/")
	s.True(dErrors.HasCode(err, dErrors.CodeForbidden))

	s.Require().NoError(s.service.SetBaseURI(as(owner), "https://new.credipet.xyz/"))
	uri, err := s.service.TokenURI(context.Background(), 1)
	s.Require().NoError(err)
	s.Equal("https://new.credipet.xyz/egg.json", uri)

	updates := s.eventsOf(eventmodels.TypeBaseURIUpdated)
	s.Require().Len(updates, 1)
	s.Equal("https://new.credipet.xyz/", updates[0].Detail)
}

func (s *ServiceSuite) TestSetEvolutionAuthority() {
	s.mint(alice)

	err := s.service.SetEvolutionAuthority(as(owner), id.ZeroPrincipal)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	s.Equal("zero address", err.Error())

	err = s.service.SetEvolutionAuthority(as(alice), bob)
	s.True(dErrors.HasCode(err, dErrors.CodeForbidden))

	s.Require().NoError(s.service.SetEvolutionAuthority(as(owner), bob))
	settings, err := s.service.Settings(context.Background())
	s.Require().NoError(err)
	s.Equal(bob, settings.EvolutionAuthority)

	_, err = s.service.Evolve(as(authority), alice, models.StageHatchling)
	s.True(dErrors.HasCode(err, dErrors.CodeForbidden), "previous authority lost its rights")
	_, err = s.service.Evolve(as(bob), alice, models.StageHatchling)
	s.Require().NoError(err)
}

func (s *ServiceSuite) TestTransferOwnership() {
	err := s.service.TransferOwnership(as(owner), id.ZeroPrincipal)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))

	s.Require().NoError(s.service.TransferOwnership(as(owner), carol))
	err = s.service.SetBaseURI(as(owner), "x/")
	s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	s.Require().NoError(s.service.SetBaseURI(as(carol), "x/"))

	transfers := s.eventsOf(eventmodels.TypeOwnershipTransferred)
	s.Require().Len(transfers, 1)
	s.Equal(owner, transfers[0].Principal)
	s.Equal(carol, transfers[0].Target)
	s.Equal("badge", transfers[0].Detail)
}

func (s *ServiceSuite) TestBootstrapKeepsPersistedSettings() {
	s.Require().NoError(s.service.SetBaseURI(as(owner), "kept/"))
	s.Require().NoError(s.service.Bootstrap(context.Background(), models.Settings{
		Owner:   carol,
		BaseURI: "ignored/",
	}))

	settings, err := s.service.Settings(context.Background())
	s.Require().NoError(err)
	s.Equal(owner, settings.Owner)
	s.Equal("kept/", settings.BaseURI)

	err = s.service.Bootstrap(context.Background(), models.Settings{})
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
}
