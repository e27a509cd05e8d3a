package config

import (
	"errors"
	"testing"

	"github.com/matryer/is"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/tauraamui/gridwatch/pkg/configdef"
)

type CreateConfigTestSuite struct {
	suite.Suite
	is             *is.I
	configCreator  configdef.Creator
	configResolver configdef.Resolver
	fs             afero.Fs
}

func (suite *CreateConfigTestSuite) SetupSuite() {
	suite.is = is.New(suite.T())
	suite.fs = afero.NewMemMapFs()
	suite.configCreator = DefaultCreator()
	suite.configResolver = DefaultResolver()

	// use in memory FS in implementation for tests
	fs = suite.fs
}

func (suite *CreateConfigTestSuite) TearDownSuite() {
	suite.fs = afero.NewOsFs()
}

func (suite *CreateConfigTestSuite) TearDownTest() {
	suite.is.NoErr(suite.fs.RemoveAll("/"))
}

func (suite *CreateConfigTestSuite) TestConfigCreate() {
	require.NoError(suite.T(), suite.configCreator.Create())
	loadedConfig, err := suite.configResolver.Resolve()

	assert.NoError(suite.T(), err)
	assert.EqualValues(suite.T(), configdef.Values{
		MaxSnapshotAgeInDays:    30,
		SnapshotIntervalSeconds: 60,
		RPCListenPort:           ":3121",
		Cameras:                 []configdef.Camera{},
	}, loadedConfig)
}

func (suite *CreateConfigTestSuite) TestConfigCreateFailsDueToAlreadyExisting() {
	suite.is.NoErr(suite.configCreator.Create())
	err := suite.configCreator.Create()
	suite.is.Equal(err.Error(), "config file already exists")
	suite.is.True(errors.Is(err, configdef.ErrConfigAlreadyExists))
}

func (suite *CreateConfigTestSuite) TestConfigDestroyRemovesExistingConfig() {
	suite.is.NoErr(suite.configCreator.Create())
	suite.is.NoErr(DefaultDestroyer().Destroy())

	_, err := suite.configResolver.Resolve()
	require.Error(suite.T(), err)
}

func TestCreateConfigTestSuite(t *testing.T) {
	suite.Run(t, &CreateConfigTestSuite{})
}
