package schema

// Catalog returns a fresh copy of every SDE table in dependency order: each
// table's FK parents appear before it, except self-references.
func Catalog() []*Table {
	var tables []*Table
	tables = append(tables, independentTables()...)
	tables = append(tables, wave2Tables()...)
	tables = append(tables, wave3Tables()...)
	tables = append(tables, wave4Tables()...)
	tables = append(tables, mapObjectTables()...)
	tables = append(tables, additionalTables()...)
	tables = append(tables, junctionTables()...)
	return tables
}

func id() Column { return Required("id", Integer) }

func position() []Column {
	return []Column{
		Col("position_x", Real).From("position.x"),
		Col("position_y", Real).From("position.y"),
		Col("position_z", Real).From("position.z"),
	}
}

func bounds() []Column {
	var out []Column
	for _, prefix := range []string{"center", "max", "min"} {
		for _, axis := range []string{"x", "y", "z"} {
			out = append(out, Col(prefix+"_"+axis, Real))
		}
	}
	return out
}

func attributes() []Column {
	return []Column{
		Col("charisma", Integer),
		Col("intelligence", Integer),
		Col("memory", Integer),
		Col("perception", Integer),
		Col("willpower", Integer),
	}
}

func cols(groups ...[]Column) []Column {
	var out []Column
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// -----------------------------------------------------------------------------
// Wave 1: no dependencies
// -----------------------------------------------------------------------------

func independentTables() []*Table {
	return []*Table{
		{
			Name:       "categories",
			SourceFile: "categories.jsonl",
			Columns:    []Column{id(), Col("name", Localized), Col("published", Boolean)},
		},
		{
			Name:       "dogma_attribute_categories",
			SourceFile: "dogmaAttributeCategories.jsonl",
			Columns:    []Column{id(), Col("description", Text), Col("name", Text)},
		},
		{
			Name:       "dogma_units",
			SourceFile: "dogmaUnits.jsonl",
			Columns:    []Column{id(), Col("description", Text), Col("display_name", Text), Col("name", Text)},
		},
		{
			Name:       "icons",
			SourceFile: "icons.jsonl",
			Columns:    []Column{id(), Col("description", Text), Col("icon_file", Text)},
		},
		{
			Name:       "graphics",
			SourceFile: "graphics.jsonl",
			Columns: []Column{
				id(),
				Col("description", Text),
				Col("graphic_file", Text),
				Col("sof_faction_name", Text),
				Col("sof_hull_name", Text),
				Col("sof_race_name", Text),
			},
		},
		{
			Name:       "agent_types",
			SourceFile: "agentTypes.jsonl",
			Columns:    []Column{id(), Col("name", Text)},
		},
		{
			Name:       "station_services",
			SourceFile: "stationServices.jsonl",
			Columns:    []Column{id(), Col("service_name", Localized)},
		},
		{
			Name:       "corporation_activities",
			SourceFile: "corporationActivities.jsonl",
			Columns:    []Column{id(), Col("name", Localized)},
		},
		{
			Name:       "meta_groups",
			SourceFile: "metaGroups.jsonl",
			Columns: []Column{
				id(),
				Col("name", Localized),
				Col("description", Localized),
				Col("icon_id", Integer),
				Col("icon_suffix", Text),
			},
		},
		{
			Name:       "character_attributes",
			SourceFile: "characterAttributes.jsonl",
			Columns: []Column{
				id(),
				Col("name", Localized),
				Col("description", Localized),
				Col("short_description", Localized),
				Col("notes", Text),
				Col("icon_id", Integer),
			},
		},
		{
			Name:       "translation_languages",
			SourceFile: "translationLanguages.jsonl",
			// Keyed by language code ("de", "en-us").
			Columns: []Column{Required("id", Text), Col("name", Text)},
		},
		{
			Name:       "skin_materials",
			SourceFile: "skinMaterials.jsonl",
			Columns:    []Column{id(), Col("display_name", Localized), Col("material_set_id", Integer)},
		},
	}
}

// -----------------------------------------------------------------------------
// Wave 2
// -----------------------------------------------------------------------------

func wave2Tables() []*Table {
	return []*Table{
		{
			Name:       "races",
			SourceFile: "races.jsonl",
			Columns: []Column{
				id(),
				Col("name", Localized),
				Col("description", Localized),
				Col("icon_id", Integer),
				Col("ship_type_id", Integer),
			},
			ForeignKeys: []ForeignKey{FK("icon_id", "icons")},
		},
		{
			Name:       "groups",
			SourceFile: "groups.jsonl",
			Columns: []Column{
				id(),
				Col("name", Localized),
				Col("category_id", Integer),
				Col("published", Boolean),
				Col("anchorable", Boolean),
				Col("anchored", Boolean),
				Col("fittable_non_singleton", Boolean),
				Col("icon_id", Integer),
				Col("use_base_price", Boolean),
			},
			ForeignKeys: []ForeignKey{FK("category_id", "categories"), FK("icon_id", "icons")},
		},
		{
			Name:       "dogma_attributes",
			SourceFile: "dogmaAttributes.jsonl",
			Columns: []Column{
				id(),
				Col("name", Text),
				Col("description", Text),
				Col("display_name", Localized),
				Col("tooltip_title", Localized),
				Col("tooltip_description", Localized),
				Col("attribute_category_id", Integer),
				Col("data_type", Integer),
				Col("default_value", Real),
				Col("display_when_zero", Boolean),
				Col("high_is_good", Boolean),
				Col("icon_id", Integer),
				Col("published", Boolean),
				Col("stackable", Boolean),
				Col("unit_id", Integer),
			},
			ForeignKeys: []ForeignKey{
				FK("attribute_category_id", "dogma_attribute_categories"),
				FK("icon_id", "icons"),
				FK("unit_id", "dogma_units"),
			},
		},
		{
			Name:       "dogma_effects",
			SourceFile: "dogmaEffects.jsonl",
			Columns: []Column{
				id(),
				Col("name", Text),
				Col("description", Text),
				Col("display_name", Localized),
				Col("effect_category", Integer),
				Col("effect_name", Text),
				Col("guid", Text),
				Col("icon_id", Integer),
				Col("is_assistance", Boolean),
				Col("is_offensive", Boolean),
				Col("is_warp_safe", Boolean),
				Col("published", Boolean),
				Col("range_chance", Boolean),
				Col("electronic_chance", Boolean),
				Col("propulsion_chance", Boolean),
				Col("disallow_auto_repeat", Boolean),
				Col("distribution", Integer),
				Col("duration_attribute_id", Integer),
				Col("discharge_attribute_id", Integer),
				Col("falloff_attribute_id", Integer),
				Col("range_attribute_id", Integer),
				Col("tracking_speed_attribute_id", Integer),
				Col("fitting_usage_chance_attribute_id", Integer),
				Col("resistance_attribute_id", Integer),
				Col("modifier_info", JSON),
			},
			ForeignKeys: []ForeignKey{FK("icon_id", "icons")},
		},
		{
			Name:       "map_regions",
			SourceFile: "mapRegions.jsonl",
			Columns: append([]Column{
				id(),
				Col("name", Localized),
				Col("description", Localized),
				Col("faction_id", Integer),
				Col("name_id", Integer),
				Col("description_id", Integer),
				Col("nebula", Integer),
				Col("wormhole_class_id", Integer),
			}, bounds()...),
		},
		{
			Name:       "market_groups",
			SourceFile: "marketGroups.jsonl",
			Columns: []Column{
				id(),
				Col("name", Localized),
				Col("description", Localized),
				Col("icon_id", Integer),
				Col("parent_group_id", Integer),
				Col("has_types", Boolean),
			},
			ForeignKeys: []ForeignKey{FK("icon_id", "icons"), FK("parent_group_id", "market_groups")},
		},
		{
			Name:       "station_operations",
			SourceFile: "stationOperations.jsonl",
			Columns: []Column{
				id(),
				Col("operation_name", Localized),
				Col("description", Localized),
				Col("activity_id", Integer),
				Col("border", Real),
				Col("corridor", Real),
				Col("fringe", Real),
				Col("hub", Real),
				Col("ratio", Real),
				Col("manufacturing_factor", Real),
				Col("research_factor", Real),
			},
		},
		{
			Name:       "skins",
			SourceFile: "skins.jsonl",
			Columns: []Column{
				id(),
				Col("internal_name", Text),
				Col("skin_material_id", Integer),
				Col("allow_ccp_devs", Boolean),
				Col("visible_serenity", Boolean),
				Col("visible_tranquility", Boolean),
			},
			ForeignKeys: []ForeignKey{FK("skin_material_id", "skin_materials")},
		},
	}
}

// -----------------------------------------------------------------------------
// Wave 3
// -----------------------------------------------------------------------------

func wave3Tables() []*Table {
	return []*Table{
		{
			Name:       "bloodlines",
			SourceFile: "bloodlines.jsonl",
			Columns: cols(
				[]Column{id(), Col("name", Localized), Col("description", Localized), Col("race_id", Integer), Col("corporation_id", Integer)},
				attributes(),
				[]Column{Col("icon_id", Integer)},
			),
			ForeignKeys: []ForeignKey{FK("race_id", "races"), FK("icon_id", "icons")},
		},
		{
			Name:       "factions",
			SourceFile: "factions.jsonl",
			Columns: []Column{
				id(),
				Col("name", Localized),
				Col("description", Localized),
				Col("short_description", Localized),
				Col("corporation_id", Integer),
				Col("militia_corporation_id", Integer),
				Col("solar_system_id", Integer),
				Col("icon_id", Integer),
				Col("size_factor", Real),
				Col("unique_name", Boolean),
				Col("member_races", JSON),
			},
			ForeignKeys: []ForeignKey{FK("icon_id", "icons")},
		},
		{
			Name:       "npc_corporations",
			SourceFile: "npcCorporations.jsonl",
			Columns: []Column{
				id(),
				Col("name", Localized),
				Col("description", Localized),
				Col("ceo_id", Integer),
				Col("station_id", Integer),
				Col("ticker_name", Text),
				Col("unique_name", Boolean),
				Col("deleted", Boolean),
				Col("extent", Text),
				Col("has_player_personnel_manager", Boolean),
				Col("initial_price", Real),
				Col("member_limit", Integer),
				Col("min_security", Real),
				Col("minimum_join_standing", Real),
				Col("send_char_termination_message", Boolean),
				Col("shares", Integer),
				Col("size", Text),
				Col("tax_rate", Real),
			},
		},
		{
			Name:       "map_constellations",
			SourceFile: "mapConstellations.jsonl",
			Columns: cols(
				[]Column{id(), Col("name", Localized), Col("region_id", Integer), Col("faction_id", Integer)},
				bounds(),
				[]Column{Col("radius", Real), Col("wormhole_class_id", Integer)},
			),
			ForeignKeys: []ForeignKey{FK("region_id", "map_regions")},
		},
		{
			Name:       "types",
			SourceFile: "types.jsonl",
			Columns: []Column{
				id(),
				Col("name", Localized),
				Col("description", Localized),
				Col("group_id", Integer),
				Col("graphic_id", Integer),
				Col("icon_id", Integer),
				Col("market_group_id", Integer),
				Col("meta_group_id", Integer),
				Col("mass", Real),
				Col("volume", Real),
				Col("radius", Real),
				Col("packaged_volume", Real),
				Col("portion_size", Integer),
				Col("capacity", Real),
				Col("base_price", Real),
				Col("published", Boolean),
				Col("race_id", Integer),
				Col("faction_id", Integer),
				Col("sof_faction_name", Text),
				Col("sound_id", Integer),
				Col("variation_parent_type_id", Integer),
			},
			ForeignKeys: []ForeignKey{
				FK("group_id", "groups"),
				FK("graphic_id", "graphics"),
				FK("icon_id", "icons"),
				FK("market_group_id", "market_groups"),
				FK("meta_group_id", "meta_groups"),
				FK("race_id", "races"),
			},
		},
	}
}

// -----------------------------------------------------------------------------
// Wave 4
// -----------------------------------------------------------------------------

func wave4Tables() []*Table {
	return []*Table{
		{
			Name:       "ancestries",
			SourceFile: "ancestries.jsonl",
			Columns: cols(
				[]Column{
					id(),
					Col("name", Localized),
					Col("description", Localized),
					Col("short_description", Localized),
					Col("bloodline_id", Integer),
				},
				attributes(),
				[]Column{Col("icon_id", Integer)},
			),
			ForeignKeys: []ForeignKey{FK("bloodline_id", "bloodlines"), FK("icon_id", "icons")},
		},
		{
			Name:       "map_solar_systems",
			SourceFile: "mapSolarSystems.jsonl",
			Columns: cols(
				[]Column{
					id(),
					Col("name", Localized),
					Col("constellation_id", Integer),
					Col("region_id", Integer),
					Col("star_id", Integer),
					Col("security_status", Real),
					Col("security_class", Text),
					Col("luminosity", Real),
					Col("radius", Real),
					Col("border", Boolean),
					Col("corridor", Boolean),
					Col("fringe", Boolean),
					Col("hub", Boolean),
					Col("international", Boolean),
					Col("regional", Boolean),
				},
				position(),
			),
			ForeignKeys: []ForeignKey{FK("constellation_id", "map_constellations"), FK("region_id", "map_regions")},
		},
		{
			Name:       "blueprints",
			SourceFile: "blueprints.jsonl",
			Columns: []Column{
				id(),
				Col("blueprint_type_id", Integer),
				Col("max_production_limit", Integer),
				Col("copying_time", Integer).From("activities.copying.time"),
				Col("manufacturing_time", Integer).From("activities.manufacturing.time"),
				Col("research_material_time", Integer).From("activities.research_material.time"),
				Col("research_time_time", Integer).From("activities.research_time.time"),
				Col("invention_time", Integer).From("activities.invention.time"),
				Col("reaction_time", Integer).From("activities.reaction.time"),
			},
			ForeignKeys: []ForeignKey{FK("blueprint_type_id", "types")},
			ChildTables: []string{"blueprint_materials", "blueprint_products", "blueprint_skills"},
		},
		{
			Name:       "skin_licenses",
			SourceFile: "skinLicenses.jsonl",
			Columns: []Column{
				id(),
				Col("license_type_id", Integer),
				Col("skin_id", Integer),
				Col("duration", Integer),
			},
			ForeignKeys: []ForeignKey{FK("license_type_id", "types"), FK("skin_id", "skins")},
		},
		{
			Name:       "certificates",
			SourceFile: "certificates.jsonl",
			Columns: []Column{
				id(),
				Col("name", Localized),
				Col("description", Localized),
				Col("group_id", Integer),
				Col("recommended_for", JSON),
			},
			ForeignKeys: []ForeignKey{FK("group_id", "groups")},
		},
	}
}

// -----------------------------------------------------------------------------
// Wave 5: map objects and stations
// -----------------------------------------------------------------------------

func mapObjectTables() []*Table {
	orbiting := func(name, file string, extra ...Column) *Table {
		return &Table{
			Name:       name,
			SourceFile: file,
			Columns: cols(
				[]Column{
					id(),
					Col("solar_system_id", Integer),
					Col("planet_id", Integer),
					Col("type_id", Integer),
					Col("celestial_index", Integer),
					Col("orbit_id", Integer),
					Col("orbit_index", Integer),
				},
				extra,
				position(),
			),
			ForeignKeys: []ForeignKey{
				FK("solar_system_id", "map_solar_systems"),
				FK("planet_id", "map_planets"),
				FK("type_id", "types"),
			},
		}
	}

	return []*Table{
		{
			Name:       "map_stars",
			SourceFile: "mapStars.jsonl",
			Columns: []Column{
				id(),
				Col("solar_system_id", Integer),
				Col("type_id", Integer),
				Col("age", Real).From("statistics.age"),
				Col("life", Real).From("statistics.life"),
				Col("locked", Boolean).From("statistics.locked"),
				Col("luminosity", Real).From("statistics.luminosity"),
				Col("radius", Real),
				Col("spectral_class", Text).From("statistics.spectralClass"),
				Col("temperature", Real).From("statistics.temperature"),
			},
			ForeignKeys: []ForeignKey{FK("solar_system_id", "map_solar_systems"), FK("type_id", "types")},
		},
		{
			Name:       "map_planets",
			SourceFile: "mapPlanets.jsonl",
			Columns: cols(
				[]Column{
					id(),
					Col("name", Localized),
					Col("solar_system_id", Integer),
					Col("type_id", Integer),
					Col("celestial_index", Integer),
					Col("orbit_id", Integer),
					Col("orbit_index", Integer),
					Col("radius", Real),
				},
				position(),
			),
			ForeignKeys: []ForeignKey{FK("solar_system_id", "map_solar_systems"), FK("type_id", "types")},
		},
		orbiting("map_moons", "mapMoons.jsonl", Col("radius", Real)),
		orbiting("map_asteroid_belts", "mapAsteroidBelts.jsonl"),
		{
			Name:       "map_stargates",
			SourceFile: "mapStargates.jsonl",
			Columns: cols(
				[]Column{
					id(),
					Col("solar_system_id", Integer),
					Col("type_id", Integer),
					Col("destination_stargate_id", Integer).From("destination.stargateID"),
					Col("destination_solar_system_id", Integer).From("destination.solarSystemID"),
				},
				position(),
			),
			ForeignKeys: []ForeignKey{
				FK("solar_system_id", "map_solar_systems"),
				FK("type_id", "types"),
				FK("destination_solar_system_id", "map_solar_systems"),
			},
		},
		{
			Name:       "npc_stations",
			SourceFile: "npcStations.jsonl",
			Columns: cols(
				[]Column{
					id(),
					Col("solar_system_id", Integer),
					Col("type_id", Integer),
					Col("owner_id", Integer),
					Col("operation_id", Integer),
					Col("orbit_id", Integer),
					Col("celestial_index", Integer),
					Col("orbit_index", Integer),
					Col("reprocessing_efficiency", Real),
					Col("reprocessing_hangar_flag", Integer),
					Col("reprocessing_stations_take", Real),
					Col("use_operation_name", Boolean),
				},
				position(),
			),
			ForeignKeys: []ForeignKey{
				FK("solar_system_id", "map_solar_systems"),
				FK("type_id", "types"),
				FK("owner_id", "npc_corporations"),
				FK("operation_id", "station_operations"),
			},
		},
	}
}

// -----------------------------------------------------------------------------
// Wave 6: later SDE additions
// -----------------------------------------------------------------------------

func additionalTables() []*Table {
	return []*Table{
		{
			Name:       "agents_in_space",
			SourceFile: "agentsInSpace.jsonl",
			Columns: []Column{
				id(),
				Col("dungeon_id", Integer),
				Col("solar_system_id", Integer),
				Col("spawn_point_id", Integer),
				Col("type_id", Integer),
			},
			ForeignKeys: []ForeignKey{FK("solar_system_id", "map_solar_systems"), FK("type_id", "types")},
		},
		{
			Name:        "clone_grades",
			SourceFile:  "cloneGrades.jsonl",
			Columns:     []Column{id(), Col("name", Text)},
			ChildTables: []string{"clone_grade_skills"},
		},
		{
			Name:        "compressible_types",
			SourceFile:  "compressibleTypes.jsonl",
			Columns:     []Column{id(), Col("compressed_type_id", Integer)},
			ForeignKeys: []ForeignKey{FK("compressed_type_id", "types")},
		},
		{
			Name:       "landmarks",
			SourceFile: "landmarks.jsonl",
			Columns: cols(
				[]Column{
					id(),
					Col("name", Localized),
					Col("description", Localized),
					Col("icon_id", Integer),
					Col("importance", Integer),
					Col("location_id", Integer),
				},
				position(),
			),
			ForeignKeys: []ForeignKey{FK("icon_id", "icons")},
		},
		{
			Name:       "npc_characters",
			SourceFile: "npcCharacters.jsonl",
			Columns: []Column{
				id(),
				Col("name", Localized),
				Col("corporation_id", Integer),
				Col("race_id", Integer),
				Col("bloodline_id", Integer),
				Col("ancestry_id", Integer),
				Col("location_id", Integer),
				Col("gender", Boolean),
				Col("ceo", Boolean),
				Col("unique_name", Boolean),
				Col("start_date", Text),
			},
			ForeignKeys: []ForeignKey{
				FK("corporation_id", "npc_corporations"),
				FK("race_id", "races"),
				FK("bloodline_id", "bloodlines"),
			},
		},
		{
			Name:       "npc_corporation_divisions",
			SourceFile: "npcCorporationDivisions.jsonl",
			Columns: []Column{
				id(),
				Col("name", Localized),
				Col("description", Localized),
				Col("display_name", Text),
				Col("internal_name", Text),
				Col("leader_type_name", Localized),
			},
		},
		{
			Name:       "planet_resources",
			SourceFile: "planetResources.jsonl",
			Columns:    []Column{id(), Col("power", Integer), Col("workforce", Integer)},
		},
		{
			Name:        "planet_schematics",
			SourceFile:  "planetSchematics.jsonl",
			Columns:     []Column{id(), Col("name", Localized), Col("cycle_time", Integer)},
			ChildTables: []string{"planet_schematic_types", "planet_schematic_pins"},
		},
		{
			Name:       "sovereignty_upgrades",
			SourceFile: "sovereigntyUpgrades.jsonl",
			Columns: []Column{
				id(),
				Col("mutually_exclusive_group", Text),
				Col("power_allocation", Integer),
				Col("workforce_allocation", Integer),
				Col("fuel_type_id", Integer).From("fuel.typeID"),
				Col("fuel_hourly_upkeep", Integer).From("fuel.hourlyUpkeep"),
				Col("fuel_startup_cost", Integer).From("fuel.startupCost"),
			},
			ForeignKeys: []ForeignKey{FK("fuel_type_id", "types")},
		},
		{
			Name:       "dbuff_collections",
			SourceFile: "dbuffCollections.jsonl",
			Columns: []Column{
				id(),
				Col("aggregate_mode", Text),
				Col("developer_description", Text),
				Col("display_name", Localized),
				Col("operation_name", Text),
				Col("show_output_value_in_ui", Text).From("showOutputValueInUI"),
			},
			ChildTables: []string{
				"dbuff_item_modifiers",
				"dbuff_location_modifiers",
				"dbuff_location_group_modifiers",
				"dbuff_location_required_skill_modifiers",
			},
		},
		{
			Name:       "freelance_job_schemas",
			SourceFile: "freelanceJobSchemas.jsonl",
			Columns:    []Column{Required("id", Text), Col("content", JSON).From("_value")},
		},
	}
}

// -----------------------------------------------------------------------------
// Junction tables
// -----------------------------------------------------------------------------

func junctionTables() []*Table {
	blueprintChild := func(name, field string, extra ...Column) *Table {
		return &Table{
			Name:       name,
			SourceFile: "blueprints.jsonl",
			Columns: cols(
				[]Column{
					Required("blueprint_id", Integer),
					Required("activity", Text),
					Required("type_id", Integer),
				},
				extra,
			),
			ForeignKeys: []ForeignKey{FK("blueprint_id", "blueprints"), FK("type_id", "types")},
			ArraySource: BlueprintActivity("blueprint_id", "activity", field),
		}
	}

	dbuffModifier := func(name, field string, extra ...Column) *Table {
		return &Table{
			Name:       name,
			SourceFile: "dbuffCollections.jsonl",
			Columns: cols(
				[]Column{Required("collection_id", Integer), Required("dogma_attribute_id", Integer)},
				extra,
			),
			ForeignKeys: []ForeignKey{
				FK("collection_id", "dbuff_collections"),
				FK("dogma_attribute_id", "dogma_attributes"),
			},
			ArraySource: SimpleArray(field, "collection_id"),
		}
	}

	groupModifiers := dbuffModifier("dbuff_location_group_modifiers", "locationGroupModifiers", Col("group_id", Integer))
	groupModifiers.ForeignKeys = append(groupModifiers.ForeignKeys, FK("group_id", "groups"))

	skillModifiers := dbuffModifier("dbuff_location_required_skill_modifiers", "locationRequiredSkillModifiers", Col("skill_id", Integer).From("skillID"))
	skillModifiers.ForeignKeys = append(skillModifiers.ForeignKeys, FK("skill_id", "types"))

	return []*Table{
		{
			Name:       "type_dogma_attributes",
			SourceFile: "typeDogma.jsonl",
			Columns: []Column{
				Required("type_id", Integer),
				Required("attribute_id", Integer),
				Required("value", Real),
			},
			ForeignKeys: []ForeignKey{FK("type_id", "types"), FK("attribute_id", "dogma_attributes")},
			ArraySource: SimpleArray("dogmaAttributes", "type_id"),
		},
		{
			Name:       "type_dogma_effects",
			SourceFile: "typeDogma.jsonl",
			Columns: []Column{
				Required("type_id", Integer),
				Required("effect_id", Integer),
				Col("is_default", Boolean),
			},
			ForeignKeys: []ForeignKey{FK("type_id", "types"), FK("effect_id", "dogma_effects")},
			ArraySource: SimpleArray("dogmaEffects", "type_id"),
		},
		{
			Name:       "type_materials",
			SourceFile: "typeMaterials.jsonl",
			Columns: []Column{
				Required("type_id", Integer),
				Required("material_type_id", Integer),
				Required("quantity", Integer),
			},
			ForeignKeys: []ForeignKey{FK("type_id", "types"), FK("material_type_id", "types")},
			ArraySource: SimpleArray("materials", "type_id"),
		},
		blueprintChild("blueprint_materials", "materials", Required("quantity", Integer)),
		blueprintChild("blueprint_products", "products", Required("quantity", Integer), Col("probability", Real)),
		blueprintChild("blueprint_skills", "skills", Required("level", Integer)),
		{
			Name:       "clone_grade_skills",
			SourceFile: "cloneGrades.jsonl",
			Columns: []Column{
				Required("clone_grade_id", Integer),
				Required("type_id", Integer),
				Required("level", Integer),
			},
			ForeignKeys: []ForeignKey{FK("clone_grade_id", "clone_grades"), FK("type_id", "types")},
			ArraySource: SimpleArray("skills", "clone_grade_id"),
		},
		{
			Name:       "control_tower_resources",
			SourceFile: "controlTowerResources.jsonl",
			Columns: []Column{
				Required("type_id", Integer),
				Required("resource_type_id", Integer),
				Col("purpose", Integer),
				Col("quantity", Integer),
				Col("faction_id", Integer),
				Col("min_security_level", Real),
			},
			ForeignKeys: []ForeignKey{FK("type_id", "types"), FK("resource_type_id", "types")},
			ArraySource: SimpleArray("resources", "type_id"),
		},
		{
			Name:       "dynamic_item_attributes",
			SourceFile: "dynamicItemAttributes.jsonl",
			Columns: []Column{
				Required("type_id", Integer),
				Required("attribute_id", Integer).From("_key"),
				Col("min", Real),
				Col("max", Real),
			},
			ForeignKeys: []ForeignKey{FK("type_id", "types"), FK("attribute_id", "dogma_attributes")},
			ArraySource: SimpleArray("attributeIDs", "type_id"),
		},
		{
			Name:       "planet_schematic_types",
			SourceFile: "planetSchematics.jsonl",
			Columns: []Column{
				Required("schematic_id", Integer),
				Required("type_id", Integer).From("_key"),
				Col("is_input", Boolean),
				Col("quantity", Integer),
			},
			ForeignKeys: []ForeignKey{FK("schematic_id", "planet_schematics"), FK("type_id", "types")},
			ArraySource: SimpleArray("types", "schematic_id"),
		},
		{
			Name:       "planet_schematic_pins",
			SourceFile: "planetSchematics.jsonl",
			Columns: []Column{
				Required("schematic_id", Integer),
				Required("pin_type_id", Integer),
			},
			ForeignKeys: []ForeignKey{FK("schematic_id", "planet_schematics"), FK("pin_type_id", "types")},
			ArraySource: IntArray("pins", "schematic_id", "pin_type_id"),
		},
		{
			Name:       "contraband_type_factions",
			SourceFile: "contrabandTypes.jsonl",
			Columns: []Column{
				Required("type_id", Integer),
				Required("faction_id", Integer).From("_key"),
				Col("attack_min_sec", Real),
				Col("confiscate_min_sec", Real),
				Col("fine_by_value", Real),
				Col("standing_loss", Real),
			},
			ForeignKeys: []ForeignKey{FK("type_id", "types"), FK("faction_id", "factions")},
			ArraySource: SimpleArray("factions", "type_id"),
		},
		dbuffModifier("dbuff_item_modifiers", "itemModifiers"),
		dbuffModifier("dbuff_location_modifiers", "locationModifiers"),
		groupModifiers,
		skillModifiers,
		{
			Name:       "type_role_bonuses",
			SourceFile: "typeBonus.jsonl",
			Columns: []Column{
				Required("type_id", Integer),
				Col("bonus", Real),
				Col("bonus_text", Localized),
				Col("importance", Integer),
				Col("unit_id", Integer),
			},
			ForeignKeys: []ForeignKey{FK("type_id", "types")},
			ArraySource: SimpleArray("roleBonuses", "type_id"),
		},
		{
			Name:       "type_trait_bonuses",
			SourceFile: "typeBonus.jsonl",
			Columns: []Column{
				Required("type_id", Integer),
				Required("skill_type_id", Integer),
				Col("bonus", Real),
				Col("bonus_text", Localized),
				Col("importance", Integer),
				Col("unit_id", Integer),
			},
			ForeignKeys: []ForeignKey{
				FK("type_id", "types"),
				FK("skill_type_id", "types"),
				FK("unit_id", "dogma_units"),
			},
			ArraySource: NestedKeyValue("types", "type_id", "skill_type_id"),
		},
		{
			Name:       "type_masteries",
			SourceFile: "masteries.jsonl",
			Columns: []Column{
				Required("type_id", Integer),
				Required("mastery_level", Integer),
				Required("certificate_id", Integer),
			},
			ForeignKeys: []ForeignKey{FK("type_id", "types"), FK("certificate_id", "certificates")},
			ArraySource: DoubleNested("type_id", "mastery_level", "certificate_id"),
		},
	}
}
